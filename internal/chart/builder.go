package chart

import (
	"github.com/junkd0g/dataexplorer/internal/dataset"
)

// Titles per kind.
const (
	TitleBar     = "Interactive Bar Chart"
	TitlePie     = "Category Distribution"
	TitleScatter = "Scatter Plot Analysis"
)

// Build produces the spec for kind. Kinds other than Bar, Pie and Scatter
// return ErrUnknownKind.
func Build(ds dataset.Dataset, kind Kind) (Spec, error) {
	switch kind {
	case Bar:
		return newSpec(ds, kind, TitleBar, Bindings{
			X:     FieldCategory,
			Y:     FieldValue,
			Color: FieldPerformance,
		}, ScaleContinuous, PaletteViridis), nil
	case Pie:
		return newSpec(ds, kind, TitlePie, Bindings{
			Values: FieldValue,
			Names:  FieldCategory,
			Color:  FieldCategory,
		}, ScaleDiscrete, PalettePastel), nil
	case Scatter:
		return newSpec(ds, kind, TitleScatter, Bindings{
			X:     FieldCategory,
			Y:     FieldValue,
			Size:  FieldPerformance,
			Color: FieldPerformance,
		}, ScaleContinuous, PalettePlasma), nil
	default:
		return Spec{}, ErrUnknownKind
	}
}

// BuildOrScatter resolves name with ParseKind and falls back to Scatter when
// the name is not recognised.
func BuildOrScatter(ds dataset.Dataset, name string) Spec {
	kind, err := ParseKind(name)
	if err != nil {
		kind = Scatter
	}
	spec, _ := Build(ds, kind)
	return spec
}

func newSpec(ds dataset.Dataset, kind Kind, title string, b Bindings, mode, palette string) Spec {
	rows := make([]dataset.Record, len(ds.Records))
	copy(rows, ds.Records)

	return Spec{
		Kind:     kind,
		Type:     kind.String(),
		Title:    title,
		Bindings: b,
		Color: ColorScale{
			Mode:    mode,
			Palette: palette,
			Colors:  PaletteColors(palette),
		},
		Theme: DarkTheme,
		Rows:  rows,
	}
}
