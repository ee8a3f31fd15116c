package dashboard

import (
	"testing"

	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEChartsOptionPie(t *testing.T) {
	spec, err := chart.Build(dataset.Generate(dataset.DefaultSeed), chart.Pie)
	require.NoError(t, err)

	option := EChartsOption(spec)
	assert.Equal(t, spec.Color.Colors, option["color"])
	assert.NotContains(t, option, "visualMap")

	series := option["series"].([]map[string]interface{})
	require.Len(t, series, 1)
	assert.Equal(t, "pie", series[0]["type"])
	data := series[0]["data"].([]map[string]interface{})
	require.Len(t, data, 5)
	assert.Equal(t, "A", data[0]["name"])
	assert.Equal(t, spec.Rows[0].Value, data[0]["value"])
}

func TestEChartsOptionBar(t *testing.T) {
	ds := dataset.Generate(dataset.DefaultSeed)
	spec, err := chart.Build(ds, chart.Bar)
	require.NoError(t, err)

	option := EChartsOption(spec)
	xAxis := option["xAxis"].(map[string]interface{})
	assert.Equal(t, ds.Categories(), xAxis["data"])
	assert.Equal(t, chart.FieldCategory, xAxis["name"])

	visualMap := option["visualMap"].(map[string]interface{})
	assert.Equal(t, 2, visualMap["dimension"])
	inRange := visualMap["inRange"].(map[string]interface{})
	assert.Equal(t, chart.PaletteColors(chart.PaletteViridis), inRange["color"])

	series := option["series"].([]map[string]interface{})
	assert.Equal(t, "bar", series[0]["type"])
	item := series[0]["data"].([]map[string]interface{})[0]
	assert.NotContains(t, item, "symbolSize")
}

func TestEChartsOptionScatterSizes(t *testing.T) {
	spec, err := chart.Build(dataset.Generate(dataset.DefaultSeed), chart.Scatter)
	require.NoError(t, err)

	series := EChartsOption(spec)["series"].([]map[string]interface{})
	assert.Equal(t, "scatter", series[0]["type"])
	for _, item := range series[0]["data"].([]map[string]interface{}) {
		size := item["symbolSize"].(float64)
		assert.GreaterOrEqual(t, size, minSymbolSize)
		assert.LessOrEqual(t, size, maxSymbolSize)
	}
}

func TestSymbolSize(t *testing.T) {
	assert.Equal(t, maxSymbolSize, SymbolSize(1.4, 1.4))
	assert.Equal(t, 20.0, SymbolSize(0.7, 1.4))
	assert.Equal(t, minSymbolSize, SymbolSize(0.01, 1.4))
	assert.Equal(t, minSymbolSize, SymbolSize(1, 0))
}
