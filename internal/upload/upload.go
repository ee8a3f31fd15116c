// Package upload parses user supplied CSV files into generic tables for
// display. Uploaded tables are never merged into the generated dataset.
package upload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// DefaultMaxBytes is the upload size limit used when none is configured.
const DefaultMaxBytes int64 = 10 << 20

// ErrTooLarge is the cause of a *ParseError for inputs above the size limit.
var ErrTooLarge = errors.New("file exceeds upload size limit")

var errNoColumns = errors.New("no columns to parse from file")

// Table is an uploaded CSV table: a header row plus string data rows.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RowCount returns the number of data rows, excluding the header.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return len(t.Columns)
}

// Column returns the values of column i.
func (t *Table) Column(i int) []string {
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// ParseError reports a file that could not be parsed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error processing file: %v", e.Err)
}

// Unwrap returns the underlying parser failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseCSV parses data into a table. The first record is the header. Rows
// shorter than the header are kept as they are; rows longer than the header
// are an error. On failure it returns a *ParseError and no table.
func ParseCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: errNoColumns}
	}
	if err != nil {
		return nil, &ParseError{Err: errors.Wrap(err, "failed to read CSV header")}
	}

	rows := [][]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{Err: errors.Errorf("expected %d fields in line %d, saw %d", len(header), line, len(row))}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: header, Rows: rows}, nil
}

// Read parses at most limit bytes from r. Inputs larger than limit are
// rejected with a *ParseError. A limit of zero or less uses DefaultMaxBytes.
func Read(r io.Reader, limit int64) (*Table, error) {
	data, err := ReadBytes(r, limit)
	if err != nil {
		return nil, err
	}
	return ParseCSV(data)
}

// ReadBytes reads at most limit bytes from r without parsing them. Errors
// are *ParseError values.
func ReadBytes(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &ParseError{Err: errors.Wrap(err, "failed to read upload")}
	}
	if err := CheckSize(int64(len(data)), limit); err != nil {
		return nil, err
	}
	return data, nil
}

// CheckSize rejects sizes above limit with a *ParseError wrapping
// ErrTooLarge.
func CheckSize(size, limit int64) error {
	if size > limit {
		return &ParseError{Err: errors.Wrapf(ErrTooLarge, "upload larger than %d bytes", limit)}
	}
	return nil
}
