package core

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csvnexus/internal/delim"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	header := Header{"Name", "Value1", "Value2", "Category", DerivedColumn}
	rows := []Row{
		TextRow("Item1", "10.5", "20.3", "A", "test_dept"),
		TextRow("Item2", "15.7", "25.6", "B", "test_dept"),
	}

	require.NoError(t, Write("output_test.csv", rows, header, dir, delim.Default, true))

	content, err := os.ReadFile(filepath.Join(dir, "output_test.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Name,Value1,Value2,Category,département\n"+
			"Item1,10.5,20.3,A,test_dept\n"+
			"Item2,15.7,25.6,B,test_dept\n",
		string(content))
}

func TestWrite_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("keep me\n"), 0o644))

	header := Header{"a"}
	rows := []Row{TextRow("x")}

	err := Write("out.csv", rows, header, dir, delim.Default, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me\n", string(content))

	require.NoError(t, Write("out.csv", rows, header, dir, delim.Default, true))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nx\n", string(content))
}

func TestWrite_RejectsRaggedRows(t *testing.T) {
	dir := t.TempDir()

	err := Write("out.csv", []Row{TextRow("x", "y")}, Header{"a"}, dir, delim.Default, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed write must leave the directory unchanged")
}

func TestWrite_RejectsPathsOutsideDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"", "../out.csv", "sub/out.csv", "/tmp/out.csv"} {
		err := Write(name, nil, Header{"a"}, dir, delim.Default, true)
		assert.True(t, errors.Is(err, ErrMalformed), "Write(%q) = %v", name, err)
	}
}

func TestWrite_FileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	rows := []Row{TextRow("x")}

	require.NoError(t, Write("new.csv", rows, Header{"h"}, dir, delim.Default, false))
	info, err := os.Stat(filepath.Join(dir, "new.csv"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm()&0o600, "owner can read and write")
	assert.Zero(t, info.Mode().Perm()&0o111, "never executable")

	private := filepath.Join(dir, "private.csv")
	require.NoError(t, os.WriteFile(private, []byte("old\n"), 0o600))
	require.NoError(t, os.Chmod(private, 0o640))
	require.NoError(t, Write("private.csv", rows, Header{"h"}, dir, delim.Default, true))

	info, err = os.Stat(private)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm(), "overwrite keeps the existing mode")
}

func TestWrite_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write("a.csv", []Row{TextRow("x")}, Header{"h"}, dir, delim.Default, false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.csv", entries[0].Name())
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src.csv",
		"Name,Value1,Value2,Category\n"+
			"|Smith, J.|,10.50,-2e3,|a||b|\n"+
			"plain,+7,.25,\n")

	header, rows, err := Load("src.csv", dir, delim.Default)
	require.NoError(t, err)

	// Write only the source columns so the file has the load shape again.
	srcHeader := header[:SourceColumns]
	srcRows := make([]Row, len(rows))
	for i, row := range rows {
		srcRows[i] = row[:SourceColumns]
	}
	require.NoError(t, Write("copy.csv", srcRows, srcHeader, dir, delim.Default, false))

	header2, rows2, err := Load("copy.csv", dir, delim.Default)
	require.NoError(t, err)
	assert.Equal(t, header, header2)
	require.Len(t, rows2, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].Strings()[:SourceColumns], rows2[i].Strings()[:SourceColumns])
		assert.Equal(t, "copy", rows2[i][SourceColumns].String())
	}
	assert.Equal(t, "10.50", rows2[0][1].String())
}

func TestWriteLoad_ExportedFileHasFiveColumns(t *testing.T) {
	// Reloading a full export fails the four column check: the derived
	// column is written out and not stripped on reload.
	dir := t.TempDir()
	writeFile(t, dir, "in.csv", "a,b,c,d\nx,1,2,y\n")

	header, rows, err := Load("in.csv", dir, delim.Default)
	require.NoError(t, err)
	require.NoError(t, Write("out.csv", rows, header, dir, delim.Default, false))

	content, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "a,b,c,d,département\n"))

	_, _, err = Load("out.csv", dir, delim.Default)
	assert.True(t, errors.Is(err, ErrMalformed))
}
