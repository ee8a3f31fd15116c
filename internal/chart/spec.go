// Package chart maps a dataset and a chart kind to a declarative chart
// specification that any rendering backend can draw.
package chart

import (
	"github.com/junkd0g/dataexplorer/internal/dataset"
)

// Dataset field names used in bindings.
const (
	FieldCategory    = "Category"
	FieldValue       = "Value"
	FieldPerformance = "Performance"
)

// Bindings maps chart channels to dataset fields. Unused channels are empty.
type Bindings struct {
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Values string `json:"values,omitempty"`
	Names  string `json:"names,omitempty"`
	Size   string `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
}

// ColorScale describes how the color channel is encoded.
type ColorScale struct {
	Mode    string   `json:"mode"`
	Palette string   `json:"palette"`
	Colors  []string `json:"colors"`
}

// Theme is the layout overlay shared by every chart kind.
type Theme struct {
	PlotBackground  string `json:"plotBackground"`
	PaperBackground string `json:"paperBackground"`
	FontColor       string `json:"fontColor"`
	TitleFontColor  string `json:"titleFontColor"`
}

// DarkTheme is the transparent-background, white-text overlay.
var DarkTheme = Theme{
	PlotBackground:  "rgba(0,0,0,0)",
	PaperBackground: "rgba(0,0,0,0)",
	FontColor:       "white",
	TitleFontColor:  "white",
}

// Spec is a renderable chart description. It is rebuilt on every render.
type Spec struct {
	Kind     Kind             `json:"-"`
	Type     string           `json:"type"`
	Title    string           `json:"title"`
	Bindings Bindings         `json:"bindings"`
	Color    ColorScale       `json:"color"`
	Theme    Theme            `json:"theme"`
	Rows     []dataset.Record `json:"rows"`
}

// Channel is one field-to-channel binding of a spec.
type Channel struct {
	Name  string
	Field string
}

// Channels lists the bound channels in a stable order.
func (s Spec) Channels() []Channel {
	all := []Channel{
		{Name: "x", Field: s.Bindings.X},
		{Name: "y", Field: s.Bindings.Y},
		{Name: "values", Field: s.Bindings.Values},
		{Name: "names", Field: s.Bindings.Names},
		{Name: "size", Field: s.Bindings.Size},
		{Name: "color", Field: s.Bindings.Color},
	}
	bound := make([]Channel, 0, len(all))
	for _, c := range all {
		if c.Field != "" {
			bound = append(bound, c)
		}
	}
	return bound
}
