package chart

// Palette names.
const (
	PaletteViridis = "Viridis"
	PalettePlasma  = "Plasma"
	PalettePastel  = "Pastel"
)

// Color encoding modes.
const (
	ScaleContinuous = "continuous"
	ScaleDiscrete   = "discrete"
)

var palettes = map[string][]string{
	// Sequential.
	PaletteViridis: {
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	},
	PalettePlasma: {
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
	},
	// Qualitative.
	PalettePastel: {
		"#66c5cc", "#f6cf71", "#f89c74", "#dcb0f2", "#87c55f",
		"#9eb9f3", "#fe88b1", "#c9db74", "#8be0a4", "#b497e7", "#b3b3b3",
	},
}

// PaletteColors returns a copy of the named palette, or nil.
func PaletteColors(name string) []string {
	colors, ok := palettes[name]
	if !ok {
		return nil
	}
	out := make([]string, len(colors))
	copy(out, colors)
	return out
}
