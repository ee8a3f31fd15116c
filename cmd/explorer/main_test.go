package main

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/junkd0g/dataexplorer/internal/config"
	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed("")
	require.NoError(t, err)
	assert.Nil(t, seed)

	seed, err = parseSeed("17")
	require.NoError(t, err)
	require.NotNil(t, seed)
	assert.Equal(t, int64(17), *seed)

	_, err = parseSeed("x")
	assert.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	*summarySeed = "5"
	defer func() { *summarySeed = "" }()

	var buf bytes.Buffer
	require.NoError(t, printSummary(config.Default(), &buf))

	ds := dataset.Generate(5)
	s := dataset.Summarize(ds)
	out := buf.String()
	assert.Contains(t, out, "PERFORMANCE")
	assert.Contains(t, out, "Average Performance")
	assert.Contains(t, out, s.AvgPerformanceDisplay())
	assert.Contains(t, out, strconv.Itoa(s.TotalValue))
	for _, r := range ds.Records {
		assert.Contains(t, out, strconv.Itoa(r.Value))
	}
}
