package upload

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV([]byte("a,b\n1,2\n3,4"))
	require.NoError(t, err)

	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 2, table.ColCount())
	assert.Equal(t, []string{"a", "b"}, table.Columns)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, table.Rows)
	assert.Equal(t, []string{"2", "4"}, table.Column(1))
}

func TestParseCSVHeaderOnly(t *testing.T) {
	table, err := ParseCSV([]byte("name,score\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, table.RowCount())
	assert.Equal(t, 2, table.ColCount())
	assert.NotNil(t, table.Rows)
}

func TestParseCSVStripsBOM(t *testing.T) {
	table, err := ParseCSV([]byte("\xef\xbb\xbfcity,pop\nOslo,700000\n"))
	require.NoError(t, err)
	assert.Equal(t, "city", table.Columns[0])
}

func TestParseCSVQuotedFields(t *testing.T) {
	table, err := ParseCSV([]byte("name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Smith, J", `said "hi"`}, table.Rows[0])
}

func TestParseCSVErrors(t *testing.T) {
	cases := map[string]string{
		"mismatched quoting": "a,b\n\"1,2\n3,4",
		"bare quote":         "a,b\n1,x\"y\"\n",
		"field count":        "a,b\n1,2,3\n",
		"empty":              "",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			table, err := ParseCSV([]byte(input))
			require.Error(t, err)
			assert.Nil(t, table)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.NotEmpty(t, perr.Error())
			assert.True(t, strings.HasPrefix(err.Error(), "Error processing file: "))
		})
	}
}

func TestParseCSVEmptyMessage(t *testing.T) {
	_, err := ParseCSV(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns to parse from file")
}

func TestParseCSVShortRows(t *testing.T) {
	table, err := ParseCSV([]byte("a,b\n1\n3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 2, table.ColCount())
	assert.Equal(t, []string{"1", "3"}, table.Column(0))
	assert.Equal(t, []string{"", "4"}, table.Column(1))
}

func TestParseCSVLongRowReportsLine(t *testing.T) {
	table, err := ParseCSV([]byte("a,b\n1,2\n3,4,5\n"))
	require.Error(t, err)
	assert.Nil(t, table)
	assert.Equal(t, "Error processing file: expected 2 fields in line 3, saw 3", err.Error())
}

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader("x\n1\n2\n3\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, table.RowCount())
	assert.Equal(t, 1, table.ColCount())
}

func TestReadTooLarge(t *testing.T) {
	table, err := Read(strings.NewReader("a,b\n1,2\n"), 4)
	require.Error(t, err)
	assert.Nil(t, table)
	assert.Contains(t, err.Error(), "upload size limit")
	assert.True(t, errors.Is(err, ErrTooLarge))

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestReadBytes(t *testing.T) {
	data, err := ReadBytes(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), data)

	assert.NoError(t, CheckSize(4, 4))
	assert.Error(t, CheckSize(5, 4))
}
