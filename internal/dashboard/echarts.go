package dashboard

import (
	"math"

	"github.com/junkd0g/dataexplorer/internal/chart"
)

const (
	minSymbolSize = 8.0
	maxSymbolSize = 40.0
)

// EChartsOption converts a chart spec into an ECharts option object.
func EChartsOption(spec chart.Spec) map[string]interface{} {
	option := map[string]interface{}{
		"backgroundColor": spec.Theme.PaperBackground,
		"textStyle":       map[string]interface{}{"color": spec.Theme.FontColor},
		"title": map[string]interface{}{
			"text":      spec.Title,
			"left":      "center",
			"textStyle": map[string]interface{}{"color": spec.Theme.TitleFontColor},
		},
		"tooltip": map[string]interface{}{"trigger": "item"},
	}

	switch spec.Kind {
	case chart.Pie:
		pieOption(option, spec)
	case chart.Bar:
		cartesianOption(option, spec, "bar")
	default:
		cartesianOption(option, spec, "scatter")
	}

	return option
}

func pieOption(option map[string]interface{}, spec chart.Spec) {
	data := make([]map[string]interface{}, 0, len(spec.Rows))
	for _, r := range spec.Rows {
		data = append(data, map[string]interface{}{"name": r.Category, "value": r.Value})
	}

	option["color"] = spec.Color.Colors
	option["tooltip"] = map[string]interface{}{"trigger": "item", "formatter": "{b}: {c} ({d}%)"}
	option["legend"] = map[string]interface{}{
		"orient":    "vertical",
		"left":      "left",
		"textStyle": map[string]interface{}{"color": spec.Theme.FontColor},
	}
	option["series"] = []map[string]interface{}{{
		"type":   "pie",
		"name":   spec.Bindings.Values,
		"radius": "65%",
		"data":   data,
		"label":  map[string]interface{}{"color": spec.Theme.FontColor, "formatter": "{b}: {d}%"},
	}}
}

func cartesianOption(option map[string]interface{}, spec chart.Spec, seriesType string) {
	categories := make([]string, 0, len(spec.Rows))
	minPerf, maxPerf := math.Inf(1), math.Inf(-1)
	for _, r := range spec.Rows {
		categories = append(categories, r.Category)
		minPerf = math.Min(minPerf, r.Performance)
		maxPerf = math.Max(maxPerf, r.Performance)
	}
	if len(spec.Rows) == 0 {
		minPerf, maxPerf = 0, 1
	}

	data := make([]map[string]interface{}, 0, len(spec.Rows))
	for _, r := range spec.Rows {
		item := map[string]interface{}{
			"value": []interface{}{r.Category, r.Value, r.Performance},
		}
		if spec.Bindings.Size != "" {
			item["symbolSize"] = SymbolSize(r.Performance, maxPerf)
		}
		data = append(data, item)
	}

	axisLine := map[string]interface{}{"lineStyle": map[string]interface{}{"color": spec.Theme.FontColor}}
	option["grid"] = map[string]interface{}{"left": "3%", "right": "12%", "bottom": "3%", "containLabel": true}
	option["xAxis"] = map[string]interface{}{
		"type":     "category",
		"name":     spec.Bindings.X,
		"data":     categories,
		"axisLine": axisLine,
	}
	option["yAxis"] = map[string]interface{}{
		"type":      "value",
		"name":      spec.Bindings.Y,
		"axisLine":  axisLine,
		"splitLine": map[string]interface{}{"lineStyle": map[string]interface{}{"color": "rgba(255,255,255,0.1)"}},
	}
	option["visualMap"] = map[string]interface{}{
		"type":       "continuous",
		"dimension":  2,
		"min":        minPerf,
		"max":        maxPerf,
		"calculable": true,
		"right":      10,
		"top":        "middle",
		"text":       []string{spec.Bindings.Color, ""},
		"inRange":    map[string]interface{}{"color": spec.Color.Colors},
		"textStyle":  map[string]interface{}{"color": spec.Theme.FontColor},
	}
	option["series"] = []map[string]interface{}{{
		"type":   seriesType,
		"name":   spec.Bindings.Y,
		"data":   data,
		"encode": map[string]interface{}{"x": 0, "y": 1},
	}}
}

// SymbolSize scales a performance score into a marker diameter in pixels.
func SymbolSize(performance, maxPerformance float64) float64 {
	if maxPerformance <= 0 {
		return minSymbolSize
	}
	size := performance / maxPerformance * maxSymbolSize
	return math.Max(minSymbolSize, math.Round(size*100)/100)
}
