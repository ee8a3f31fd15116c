package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestImagePNG(t *testing.T) {
	ds := dataset.Generate(dataset.DefaultSeed)
	for _, k := range chart.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			spec, err := chart.Build(ds, k)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Image(spec, PNG, &buf, Options{Width: 640, Height: 360}))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestImageSVG(t *testing.T) {
	spec, err := chart.Build(dataset.Generate(dataset.DefaultSeed), chart.Pie)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Image(spec, SVG, &buf, Options{}))
	assert.True(t, strings.Contains(buf.String(), "<svg"))
	assert.Contains(t, buf.String(), chart.TitlePie)
}

func TestImageErrors(t *testing.T) {
	spec, err := chart.Build(dataset.Generate(dataset.DefaultSeed), chart.Bar)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Image(spec, Format("gif"), &buf, Options{})
	assert.Equal(t, ErrUnsupportedFormat, errors.Cause(err))

	err = Image(chart.Spec{Kind: chart.Bar}, PNG, &buf, Options{})
	assert.Error(t, err)

	spec.Kind = chart.Kind(99)
	assert.Equal(t, chart.ErrUnknownKind, Image(spec, PNG, &buf, Options{}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = ParseFormat("/tmp/out/chart.svg")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	_, err = ParseFormat("chart.jpg")
	assert.Error(t, err)
}

func TestContinuousColor(t *testing.T) {
	palette := chart.PaletteColors(chart.PaletteViridis)

	assert.Equal(t, palette[0], continuousColor(palette, 0.5, 0.5, 1.5))
	assert.Equal(t, palette[len(palette)-1], continuousColor(palette, 1.5, 0.5, 1.5))
	assert.Equal(t, palette[len(palette)-1], continuousColor(palette, 1, 1, 1))
	assert.Equal(t, "#ffffff", continuousColor(nil, 1, 0, 2))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, drawing.ColorTransparent, parseColor("rgba(0,0,0,0)"))
	assert.Equal(t, drawing.ColorWhite, parseColor("white"))
	assert.Equal(t, drawing.ColorFromHex("440154"), parseColor("#440154"))
}

func TestWriteFile(t *testing.T) {
	spec, err := chart.Build(dataset.Generate(dataset.DefaultSeed), chart.Bar)
	require.NoError(t, err)

	dir := t.TempDir()
	svgPath := filepath.Join(dir, "nested", "chart.svg")
	require.NoError(t, WriteFile(spec, svgPath, Options{}))

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	err = WriteFile(spec, filepath.Join(dir, "chart.gif"), Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())
	assert.NoError(t, Options{Width: MaxDimension, Height: MaxDimension}.Validate())

	for _, o := range []Options{
		{Width: MaxDimension + 1},
		{Height: 100000},
		{Width: -1},
	} {
		assert.True(t, errors.Is(o.Validate(), ErrInvalidSize), "%+v", o)
	}
}

func TestImageRejectsOversize(t *testing.T) {
	spec, err := chart.Build(dataset.Generate(dataset.DefaultSeed), chart.Bar)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Image(spec, PNG, &buf, Options{Width: 100000, Height: 100000})
	assert.True(t, errors.Is(err, ErrInvalidSize))
	assert.Zero(t, buf.Len())
}
