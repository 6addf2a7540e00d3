package csvparser

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HeaderAndRows(t *testing.T) {
	t.Parallel()

	data := Parse("Zone , Ward,Total\nZ1, 09-Gandhi Nagar ,100\nZ2,08-Atas,50\n")

	assert.Equal(t, []string{"Zone", "Ward", "Total"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, Record{"Zone": "Z1", "Ward": "09-Gandhi Nagar", "Total": "100"}, data.Rows[0])
	assert.Equal(t, []int{2, 3}, data.LineNumbers)
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, 3, data.ColumnCount)
}

func TestParse_MissingTrailingFieldsDefaultToEmpty(t *testing.T) {
	t.Parallel()

	data := Parse("A,B,C\nx")

	require.Len(t, data.Rows, 1)
	assert.Equal(t, Record{"A": "x", "B": "", "C": ""}, data.Rows[0])
}

func TestParse_ExtraValuesIgnored(t *testing.T) {
	t.Parallel()

	data := Parse("A,B\n1,2,3,4")

	require.Len(t, data.Rows, 1)
	assert.Equal(t, Record{"A": "1", "B": "2"}, data.Rows[0])
}

func TestParse_BlankLinesDropped(t *testing.T) {
	t.Parallel()

	data := Parse("A,B\n\n , \n1,2\n,,\n\n")

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "1", data.Rows[0].Get("A"))
	assert.Equal(t, []int{4}, data.LineNumbers)
}

func TestParse_CRLF(t *testing.T) {
	t.Parallel()

	data := Parse("A,B\r\n1,2\r\n")

	assert.Equal(t, []string{"A", "B"}, data.Headers)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, Record{"A": "1", "B": "2"}, data.Rows[0])
}

func TestParse_EmbeddedCommaIsNotQuoted(t *testing.T) {
	t.Parallel()

	// Quotes are not interpreted: the value is split at the comma.
	data := Parse("Ward,Total\n\"Nagar, East\",5")

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "\"Nagar", data.Rows[0].Get("Ward"))
	assert.Equal(t, "East\"", data.Rows[0].Get("Total"))
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "\n", "   \n1,2\n"} {
		data := Parse(text)
		assert.Empty(t, data.Headers, "text %q", text)
		assert.Empty(t, data.Rows, "text %q", text)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	t.Parallel()

	data := Parse("Zone,Ward")

	assert.Equal(t, []string{"Zone", "Ward"}, data.Headers)
	assert.Empty(t, data.Rows)
	assert.True(t, data.HasHeader("Ward"))
	assert.False(t, data.HasHeader("Total"))
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n1,2\n"), 0o644))

	data, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, data.SourceFile)
	assert.Len(t, data.Rows, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestParse_LongLine(t *testing.T) {
	t.Parallel()

	text := "Ward,Total\n" + strings.Repeat("w", 5*1024*1024) + ",7\nW2,3\n"

	data := Parse(text)
	require.NotNil(t, data)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "7", data.Rows[0].Get("Total"))
	assert.Equal(t, []int{2, 3}, data.LineNumbers)

	path := filepath.Join(t.TempDir(), "long.csv")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	fromFile, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, data.Rows, fromFile.Rows)
}

func TestParseReader_ReadError(t *testing.T) {
	t.Parallel()

	failure := errors.New("disk gone")
	r := io.MultiReader(strings.NewReader("A,B\n1,2\n"), iotest.ErrReader(failure))

	data, err := ParseReader(r)
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, data)

	partial, err := parse(io.MultiReader(strings.NewReader("A,B\n1,2\n"), iotest.ErrReader(failure)))
	assert.ErrorIs(t, err, failure)
	require.NotNil(t, partial)
	assert.Len(t, partial.Rows, 1)
}

func TestFromRows(t *testing.T) {
	t.Parallel()

	data := FromRows([][]string{
		{" Zone", "Ward "},
		{"Z1"},
		{"", " "},
		{"Z2", "W2", "extra"},
	})

	assert.Equal(t, []string{"Zone", "Ward"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, Record{"Zone": "Z1", "Ward": ""}, data.Rows[0])
	assert.Equal(t, Record{"Zone": "Z2", "Ward": "W2"}, data.Rows[1])
	assert.Equal(t, []int{2, 4}, data.LineNumbers)

	assert.Empty(t, FromRows(nil).Rows)
}

func TestStreamingParser_MatchesParse(t *testing.T) {
	t.Parallel()

	text := "A,B\n1,2\n\n3\n"
	parser := NewStreamingParser(strings.NewReader(text))

	var rows []Record
	for parser.Next() {
		rows = append(rows, parser.Row())
	}
	require.NoError(t, parser.Err())
	assert.Equal(t, Parse(text).Rows, rows)
	assert.Equal(t, []string{"A", "B"}, parser.Headers())
}

func TestColumnHelpers(t *testing.T) {
	t.Parallel()

	data := Parse("Ward,Total\nW1,1\nW2,2\nW1,3")

	assert.Equal(t, []string{"W1", "W2", "W1"}, GetColumnByHeader(data, "Ward"))
	assert.Equal(t, []string{"W1", "W2"}, GetUniqueValues(data, "Ward"))

	filtered := FilterRows(data, func(r Record) bool { return r.Get("Ward") == "W1" })
	assert.Len(t, filtered, 2)
}
