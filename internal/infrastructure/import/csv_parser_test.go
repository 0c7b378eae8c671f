package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_ParseHeaderAndRows(t *testing.T) {
	data := "full_name,email,graduation_year\nAhmad Fauzi,fauzi@example.com,2010\n  Siti Aminah ,siti@example.com,2015\n"

	parser, err := NewCSVParser(strings.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	assert.Equal(t, []string{"full_name", "email", "graduation_year"}, parser.Headers())
	assert.True(t, parser.HasHeader("email"))
	assert.False(t, parser.HasHeader("phone"))

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, "Ahmad Fauzi", rows[0].Get("full_name"))
	assert.Equal(t, "Siti Aminah", rows[1].Get("full_name"))
	assert.Equal(t, "2015", rows[1].Get("graduation_year"))
}

func TestCSVParser_StripsBOM(t *testing.T) {
	data := "\xEF\xBB\xBFfull_name,email\nAhmad,ahmad@example.com\n"

	parser, err := NewCSVParser(strings.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	assert.Equal(t, "full_name", parser.Headers()[0])
}

func TestCSVParser_UppercaseHeadersAreLowered(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("Full_Name,EMAIL\nAhmad,ahmad@example.com\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	assert.True(t, parser.HasHeader("full_name"))
	assert.True(t, parser.HasHeader("email"))
}

func TestCSVParser_EmptyFile(t *testing.T) {
	_, err := NewCSVParser(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestCSVParser_InvalidEncoding(t *testing.T) {
	// Latin-1 encoded "é" is not valid UTF-8.
	_, err := NewCSVParser(strings.NewReader("full_name\n\xe9\n"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestCSVParser_MissingHeaders(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("full_name\nAhmad\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	missing := parser.MissingHeaders([]string{"full_name", "email", "graduation_year"})
	assert.Equal(t, []string{"email", "graduation_year"}, missing)
}

func TestCSVParser_SkipsEmptyRows(t *testing.T) {
	data := "full_name,email\nAhmad,ahmad@example.com\n,\nSiti,siti@example.com\n"

	parser, err := NewCSVParser(strings.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCSVParser_ShortRowPadsMissingColumns(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("full_name,email,phone\nAhmad,ahmad@example.com\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "", row.Get("phone"))

	_, err = parser.ReadRow()
	assert.Equal(t, io.EOF, err)
}

func TestCSVParser_Semicolon(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("full_name;email\nAhmad;ahmad@example.com\n"), WithDelimiter(';'))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "ahmad@example.com", row.Get("email"))
}

func TestErrorCollection_Truncation(t *testing.T) {
	ec := NewErrorCollection(2)
	ec.AddRequiredError(2, "email")
	ec.AddRequiredError(3, "email")
	ec.AddFormatError(4, "graduation_year", "a four digit year", "abc")

	assert.Len(t, ec.Errors(), 2)
	assert.Equal(t, 3, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
	assert.Contains(t, ec.String(), "3 error(s) found (showing first 2)")
}

func TestRowError_Error(t *testing.T) {
	err := RowError{Row: 5, Column: "email", Code: ErrCodeImportRequiredField, Message: "field 'email' is required"}
	assert.Equal(t, "row 5, column 'email': field 'email' is required", err.Error())

	bare := RowError{Row: 7, Code: ErrCodeImportValidation, Message: "row is malformed"}
	assert.Equal(t, "row 7: row is malformed", bare.Error())
}
