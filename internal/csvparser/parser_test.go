package csvparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse(t *testing.T) {
	path := writeFile(t, "email,lineitem_title,lineitem_quantity\n"+
		"jane@example.com,Base Pledge,1\n"+
		"bob@example.com,\"Poster, signed\",2\n")

	data, err := Parse(path, Settings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "lineitem_title", "lineitem_quantity"}, data.Headers)
	require.Equal(t, 2, data.RowCount())
	assert.Equal(t, "jane@example.com", data.Rows[0]["email"])
	assert.Equal(t, "Poster, signed", data.Rows[1]["lineitem_title"])
	assert.Equal(t, path, data.SourceFile)
}

func TestParseSemicolonDelimiter(t *testing.T) {
	path := writeFile(t, "email;lineitem_title\njane@example.com;Pledge\n")

	data, err := Parse(path, Settings{Delimiter: ";"})
	require.NoError(t, err)

	require.Equal(t, 1, data.RowCount())
	assert.Equal(t, "Pledge", data.Rows[0]["lineitem_title"])
}

func TestParseStripsBOMAndHeaderWhitespace(t *testing.T) {
	path := writeFile(t, "\uFEFFemail, lineitem_title \njane@example.com,Pledge\n")

	data, err := Parse(path, Settings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "lineitem_title"}, data.Headers)
}

func TestParseShortRowPadsMissingFields(t *testing.T) {
	path := writeFile(t, "email,lineitem_title,note_attributes\njane@example.com,Pledge\n")

	data, err := Parse(path, Settings{})
	require.NoError(t, err)

	require.Equal(t, 1, data.RowCount())
	assert.Equal(t, "", data.Rows[0]["note_attributes"])
}

func TestParseSkipsBlankRows(t *testing.T) {
	path := writeFile(t, "email,lineitem_title\njane@example.com,Pledge\n,\n\n")

	data, err := Parse(path, Settings{})
	require.NoError(t, err)
	assert.Equal(t, 1, data.RowCount())
}

func TestParseHeaderOnlyFileHasZeroRows(t *testing.T) {
	path := writeFile(t, "email,lineitem_title\n")

	data, err := Parse(path, Settings{})
	require.NoError(t, err)
	assert.Equal(t, 0, data.RowCount())
}

func TestParseEmptyFileFails(t *testing.T) {
	path := writeFile(t, "")

	_, err := Parse(path, Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParseMissingFileFails(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "absent.csv"), Settings{})
	require.Error(t, err)
}

func TestMissingColumns(t *testing.T) {
	path := writeFile(t, "email,lineitem_title\njane@example.com,Pledge\n")

	data, err := Parse(path, Settings{})
	require.NoError(t, err)

	missing := data.MissingColumns([]string{"email", "lineitem_quantity", "shipping_method"})
	assert.Equal(t, []string{"lineitem_quantity", "shipping_method"}, missing)

	assert.Nil(t, data.MissingColumns([]string{"email"}))
}
