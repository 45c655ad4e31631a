package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/paperclass/internal/model"
)

const sampleCSV = `Title,Abstract,Journal/Book,abstract_embedding,similarity_score,Year
Deep nets,"We use a CNN, and more.",Virology,"[0.1, 0.2]",0.93,2021
Short row,Only abstract
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func defaultLoadOptions() LoadOptions {
	return LoadOptions{
		Delimiter:     ',',
		JournalColumn: "Journal/Book",
		DropColumns:   []string{"abstract_embedding", "similarity_score"},
	}
}

func TestLoad_NormalizesColumns(t *testing.T) {
	path := writeFile(t, "in.csv", sampleCSV)

	tbl, err := Load(path, defaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Title", "Abstract", "Journal", "Year"}, tbl.Header)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "We use a CNN, and more.", tbl.Value(0, "Abstract"))
	assert.Equal(t, "Virology", tbl.Value(0, "Journal"))

	r := tbl.Record(1)
	assert.Equal(t, model.Record{Title: "Short row", Abstract: "Only abstract"}, r)
}

func TestLoad_OptionalColumnsAbsent(t *testing.T) {
	path := writeFile(t, "in.csv", "Title,Abstract,Journal/Book\nA,B,C\n")

	tbl, err := Load(path, defaultLoadOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Abstract", "Journal"}, tbl.Header)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	path := writeFile(t, "in.csv", "Title,Journal/Book\nA,C\n")

	_, err := Load(path, defaultLoadOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInputSchema))
	assert.Contains(t, err.Error(), "Abstract")
}

func TestLoad_JournalColumnAlreadyNamed(t *testing.T) {
	path := writeFile(t, "in.csv", "Title,Abstract,Journal\nA,B,C\n")

	tbl, err := Load(path, defaultLoadOptions())
	require.NoError(t, err)
	assert.Equal(t, "C", tbl.Value(0, "Journal"))
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "in.csv", "")

	_, err := Load(path, defaultLoadOptions())
	assert.True(t, errors.Is(err, model.ErrInputSchema))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), defaultLoadOptions())
	assert.True(t, errors.Is(err, model.ErrIO))
}

func TestRead_TooManyFields(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n1,2,3\n"), ',')
	assert.True(t, errors.Is(err, model.ErrInputSchema))
}

func TestRead_MalformedQuoting(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\nx\"y,z\n"), ',')
	assert.True(t, errors.Is(err, model.ErrInputSchema), "bare quote in row: %v", err)

	_, err = Read(strings.NewReader("\"a,b\n"), ',')
	assert.True(t, errors.Is(err, model.ErrInputSchema), "unterminated quote in header: %v", err)
	assert.False(t, errors.Is(err, model.ErrIO))
}

func TestRead_StripsBOMAndHonorsDelimiter(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ufeffTitle;Abstract\nx;y\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Abstract"}, tbl.Header)
	assert.Equal(t, "y", tbl.Value(0, "Abstract"))
}

func TestRename_Conflict(t *testing.T) {
	tbl := New([]string{"Journal/Book", "Journal"}, nil)
	err := tbl.Rename("Journal/Book", "Journal")
	assert.True(t, errors.Is(err, model.ErrInputSchema))
}

func TestProjectAndAddColumn(t *testing.T) {
	tbl := New([]string{"a", "b", "c"}, [][]string{{"1", "2", "3"}, {"4", "5", "6"}})

	p, err := tbl.Project("c", "a")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"3", "1"}, {"6", "4"}}, p.Rows)

	p.Rows[0][0] = "changed"
	assert.Equal(t, "3", tbl.Value(0, "c"), "projection must not alias the source")

	require.NoError(t, tbl.AddColumn("d", []string{"x", "y"}))
	assert.Equal(t, []string{"a", "b", "c", "d"}, tbl.Header)
	require.NoError(t, tbl.AddColumn("d", []string{"p", "q"}))
	assert.Equal(t, []string{"p", "q"}, tbl.Column("d"))
	assert.Error(t, tbl.AddColumn("e", []string{"only one"}))

	_, err = tbl.Project("zzz")
	assert.True(t, errors.Is(err, model.ErrInputSchema))
}

func TestDrop(t *testing.T) {
	tbl := New([]string{"a", "b", "c"}, [][]string{{"1", "2", "3"}})
	tbl.Drop("b", "missing")
	assert.Equal(t, []string{"a", "c"}, tbl.Header)
	assert.Equal(t, [][]string{{"1", "3"}}, tbl.Rows)
}

func TestSave_RoundTripsQuoting(t *testing.T) {
	tbl := New([]string{"Title", "Abstract"}, [][]string{{"x", "has, comma and \"quotes\""}})
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	require.NoError(t, tbl.Save(path, ','))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title,Abstract\nx,\"has, comma and \"\"quotes\"\"\"\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestSave_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	tbl := New([]string{"a"}, nil)
	err := tbl.Save(filepath.Join(blocker, "out.csv"), ',')
	assert.True(t, errors.Is(err, model.ErrIO))
}
