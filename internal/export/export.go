// Package export writes the generated dataset to an XLSX workbook.
package export

import (
	"io"
	"os"
	"path/filepath"

	"github.com/junkd0g/dataexplorer/internal/dataset"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	DatasetSheet = "Dataset"
	SummarySheet = "Summary"

	// ContentType is the MIME type of the workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var datasetHeader = []interface{}{"Category", "Value", "Performance"}

// Workbook builds a two-sheet workbook: the records and their summary
// metrics. The caller must close the returned file.
func Workbook(ds dataset.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", DatasetSheet); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to name dataset sheet")
	}
	if err := writeDataset(f, ds); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to create summary sheet")
	}
	if err := writeSummary(f, ds); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write streams the workbook for ds to w.
func Write(ds dataset.Dataset, w io.Writer) error {
	f, err := Workbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

// WriteFile saves the workbook for ds to path, creating parent directories.
func WriteFile(ds dataset.Dataset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create directory for '%s'", path)
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create '%s'", path)
	}
	if err := Write(ds, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeDataset(f *excelize.File, ds dataset.Dataset) error {
	if err := f.SetSheetRow(DatasetSheet, "A1", &datasetHeader); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if err := boldRow(f, DatasetSheet, "A1", "C1"); err != nil {
		return err
	}

	for i, r := range ds.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "invalid cell")
		}
		row := []interface{}{r.Category, r.Value, r.Performance}
		if err := f.SetSheetRow(DatasetSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write record %s", r.Category)
		}
	}

	return f.SetColWidth(DatasetSheet, "A", "C", 14)
}

func writeSummary(f *excelize.File, ds dataset.Dataset) error {
	s := dataset.Summarize(ds)
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Value", s.TotalValue},
		{"Average Performance", s.AvgPerformanceDisplay()},
		{"Seed", ds.Seed},
		{"Records", ds.Len()},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return errors.Wrap(err, "failed to write summary")
		}
	}
	if err := boldRow(f, SummarySheet, "A1", "B1"); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "B", 22)
}

func boldRow(f *excelize.File, sheet, from, to string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}
	return f.SetCellStyle(sheet, from, to, style)
}
