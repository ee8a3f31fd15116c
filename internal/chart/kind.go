package chart

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind selects the visual encoding applied to a dataset.
type Kind int

const (
	Bar Kind = iota + 1
	Pie
	Scatter
)

// ErrUnknownKind is returned for chart kinds outside Bar, Pie and Scatter.
var ErrUnknownKind = errors.New("unknown chart kind")

var kindNames = map[Kind]string{
	Bar:     "bar",
	Pie:     "pie",
	Scatter: "scatter",
}

var kindLabels = map[Kind]string{
	Bar:     "Bar Chart",
	Pie:     "Pie Chart",
	Scatter: "Scatter Plot",
}

// Kinds returns every chart kind in selector order.
func Kinds() []Kind {
	return []Kind{Bar, Pie, Scatter}
}

// String returns the short name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Label returns the name shown in the control panel.
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "Unknown"
}

// Valid reports whether k is one of the recognised kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind accepts a short name ("bar") or a control panel label
// ("Bar Chart"), ignoring case and surrounding space.
func ParseKind(name string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if needle == kindNames[k] || needle == strings.ToLower(kindLabels[k]) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
}
