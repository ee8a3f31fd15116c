// Package render draws a chart spec to a static PNG or SVG image.
package render

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/junkd0g/dataexplorer/internal/chart"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pkg/errors"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

const (
	defaultWidth  = 1024
	defaultHeight = 512

	minDotRadius = 3.0
	maxDotRadius = 12.0
)

// MaxDimension bounds the width and height of a rendered image.
const MaxDimension = 4096

var (
	// ErrUnsupportedFormat is returned for formats other than PNG and SVG.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrInvalidSize is returned for negative or oversized dimensions.
	ErrInvalidSize = errors.New("invalid image size")
)

// ParseFormat accepts "png" or "svg", or a file name ending in either.
func ParseFormat(s string) (Format, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case lower == "png" || strings.HasSuffix(lower, ".png"):
		return PNG, nil
	case lower == "svg" || strings.HasSuffix(lower, ".svg"):
		return SVG, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Options sets the image size. Zero values use the defaults.
type Options struct {
	Width  int
	Height int
}

// Validate rejects negative dimensions and dimensions above MaxDimension.
// Zero means the default.
func (o Options) Validate() error {
	if o.Width < 0 || o.Width > MaxDimension || o.Height < 0 || o.Height > MaxDimension {
		return errors.Wrapf(ErrInvalidSize, "%dx%d, each side must be at most %d", o.Width, o.Height, MaxDimension)
	}
	return nil
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// WriteFile renders spec to path. The format follows the file extension.
func WriteFile(spec chart.Spec, path string, opts Options) error {
	format, err := ParseFormat(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create directory for '%s'", path)
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create '%s'", path)
	}
	if err := Image(spec, format, out, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Image renders spec in format to w.
func Image(spec chart.Spec, format Format, w io.Writer, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	var provider gochart.RendererProvider
	switch format {
	case PNG:
		provider = gochart.PNG
	case SVG:
		provider = gochart.SVG
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	if len(spec.Rows) == 0 {
		return errors.New("chart has no rows to render")
	}

	var err error
	switch spec.Kind {
	case chart.Bar:
		err = barChart(spec, opts).Render(provider, w)
	case chart.Pie:
		err = pieChart(spec, opts).Render(provider, w)
	case chart.Scatter:
		err = scatterChart(spec, opts).Render(provider, w)
	default:
		return chart.ErrUnknownKind
	}
	if err != nil {
		return errors.Wrapf(err, "failed to render %s chart", spec.Type)
	}
	return nil
}

func themeStyles(spec chart.Spec) (background, canvas, title gochart.Style) {
	fill := parseColor(spec.Theme.PaperBackground)
	background = gochart.Style{FillColor: fill, Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}}
	canvas = gochart.Style{FillColor: parseColor(spec.Theme.PlotBackground)}
	title = gochart.Style{FontColor: parseColor(spec.Theme.TitleFontColor), FontSize: 16}
	return background, canvas, title
}

func axisStyle(spec chart.Spec) gochart.Style {
	font := parseColor(spec.Theme.FontColor)
	return gochart.Style{FontColor: font, StrokeColor: font}
}

func barChart(spec chart.Spec, opts Options) gochart.BarChart {
	width, height := opts.size()
	background, canvas, title := themeStyles(spec)
	lo, hi := performanceRange(spec)

	bars := make([]gochart.Value, 0, len(spec.Rows))
	for _, r := range spec.Rows {
		color := parseColor(continuousColor(spec.Color.Colors, r.Performance, lo, hi))
		bars = append(bars, gochart.Value{
			Label: r.Category,
			Value: float64(r.Value),
			Style: gochart.Style{FillColor: color, StrokeColor: color},
		})
	}

	return gochart.BarChart{
		Title:      spec.Title,
		TitleStyle: title,
		Width:      width,
		Height:     height,
		BarWidth:   width / (3 * len(bars)),
		BarSpacing: width / (6 * len(bars)),
		Background: background,
		Canvas:     canvas,
		XAxis:      axisStyle(spec),
		YAxis: gochart.YAxis{
			Name:  spec.Bindings.Y,
			Style: axisStyle(spec),
		},
		Bars: bars,
	}
}

func pieChart(spec chart.Spec, opts Options) gochart.PieChart {
	width, height := opts.size()
	background, canvas, title := themeStyles(spec)
	font := parseColor(spec.Theme.FontColor)

	values := make([]gochart.Value, 0, len(spec.Rows))
	for i, r := range spec.Rows {
		color := parseColor(discreteColor(spec.Color.Colors, i))
		values = append(values, gochart.Value{
			Label: r.Category,
			Value: float64(r.Value),
			Style: gochart.Style{FillColor: color, StrokeColor: color, FontColor: font},
		})
	}

	return gochart.PieChart{
		Title:      spec.Title,
		TitleStyle: title,
		Width:      width,
		Height:     height,
		Background: background,
		Canvas:     canvas,
		Values:     values,
	}
}

func scatterChart(spec chart.Spec, opts Options) gochart.Chart {
	width, height := opts.size()
	background, canvas, title := themeStyles(spec)
	lo, hi := performanceRange(spec)

	xs := make([]float64, len(spec.Rows))
	ys := make([]float64, len(spec.Rows))
	ticks := make([]gochart.Tick, len(spec.Rows))
	for i, r := range spec.Rows {
		xs[i] = float64(i)
		ys[i] = float64(r.Value)
		ticks[i] = gochart.Tick{Value: float64(i), Label: r.Category}
	}

	rows := spec.Rows
	colors := spec.Color.Colors
	series := gochart.ContinuousSeries{
		Name: spec.Bindings.Y,
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidthProvider: func(_, _ gochart.Range, index int, _, _ float64) float64 {
				return dotRadius(rows[index].Performance, hi)
			},
			DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
				return parseColor(continuousColor(colors, rows[index].Performance, lo, hi))
			},
		},
		XValues: xs,
		YValues: ys,
	}

	return gochart.Chart{
		Title:      spec.Title,
		TitleStyle: title,
		Width:      width,
		Height:     height,
		Background: background,
		Canvas:     canvas,
		XAxis: gochart.XAxis{
			Name:  spec.Bindings.X,
			Style: axisStyle(spec),
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(rows)) - 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  spec.Bindings.Y,
			Style: axisStyle(spec),
		},
		Series: []gochart.Series{series},
	}
}

func performanceRange(spec chart.Spec) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range spec.Rows {
		lo = math.Min(lo, r.Performance)
		hi = math.Max(hi, r.Performance)
	}
	return lo, hi
}

func dotRadius(performance, maxPerformance float64) float64 {
	if maxPerformance <= 0 {
		return minDotRadius
	}
	return math.Max(minDotRadius, performance/maxPerformance*maxDotRadius)
}

// continuousColor picks the palette stop nearest to v within [lo, hi].
func continuousColor(palette []string, v, lo, hi float64) string {
	if len(palette) == 0 {
		return "#ffffff"
	}
	if hi <= lo {
		return palette[len(palette)-1]
	}
	t := (v - lo) / (hi - lo)
	t = math.Max(0, math.Min(1, t))
	return palette[int(math.Round(t*float64(len(palette)-1)))]
}

func discreteColor(palette []string, i int) string {
	if len(palette) == 0 {
		return "#ffffff"
	}
	return palette[i%len(palette)]
}

// parseColor understands "#rrggbb", "white" and "rgba(r,g,b,a)" with a zero
// alpha, which are the only forms chart specs use.
func parseColor(s string) drawing.Color {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	switch {
	case s == "white":
		return drawing.ColorWhite
	case s == "black":
		return drawing.ColorBlack
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ",0)"):
		return drawing.ColorTransparent
	case strings.HasPrefix(s, "#"):
		return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
	}
	return drawing.ColorWhite
}
