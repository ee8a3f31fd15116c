package export

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteRoundTrip(t *testing.T) {
	ds := dataset.Generate(dataset.DefaultSeed)

	var buf bytes.Buffer
	require.NoError(t, Write(ds, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DatasetSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(DatasetSheet)
	require.NoError(t, err)
	require.Len(t, rows, ds.Len()+1)
	assert.Equal(t, []string{"Category", "Value", "Performance"}, rows[0])

	for i, r := range ds.Records {
		row := rows[i+1]
		assert.Equal(t, r.Category, row[0])
		assert.Equal(t, strconv.Itoa(r.Value), row[1])

		perf, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.InDelta(t, r.Performance, perf, 1e-9)
	}
}

func TestSummarySheet(t *testing.T) {
	ds := dataset.Generate(7)
	s := dataset.Summarize(ds)

	f, err := Workbook(ds)
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(s.TotalValue), total)

	avg, err := f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, s.AvgPerformanceDisplay(), avg)

	seed, err := f.GetCellValue(SummarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "7", seed)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dataset.xlsx")
	require.NoError(t, WriteFile(dataset.Generate(1), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DatasetSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}
