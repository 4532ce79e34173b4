package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csvnexus/internal/delim"
)

// writeFile creates name in dir with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "test_data.csv", "Name,Value1,Value2,Category\nItem1,10.5,20.3,A\nItem2,15.7,25.6,B\n")

	header, rows, err := Load("test_data.csv", dir, delim.Default)
	require.NoError(t, err)

	assert.Equal(t, Header{"Name", "Value1", "Value2", "Category", "département"}, header)

	want := []Row{
		{Text("Item1"), Number(10.5), Number(20.3), Text("A"), Text("test_data")},
		{Text("Item2"), Number(15.7), Number(25.6), Text("B"), Text("test_data")},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	f, ok := rows[0][1].Float()
	require.True(t, ok)
	assert.Equal(t, 10.5, f)
	assert.Equal(t, KindText, rows[0][4].Kind())
}

func TestLoad_Shape(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sales.2024.csv", "a,b,c,d\nx,1,2,y\nz,-3e2,.5,w\n")

	header, rows, err := Load("sales.2024.csv", dir, delim.Default)
	require.NoError(t, err)
	require.Len(t, header, 5)
	for _, row := range rows {
		require.Len(t, row, len(header))
		assert.Equal(t, "sales.2024", row[4].String())
	}

	f, ok := rows[1][1].Float()
	require.True(t, ok)
	assert.Equal(t, -300.0, f)
	assert.Equal(t, "-3e2", rows[1][1].String())
}

func TestLoad_QuotedAndCustomDelimiter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "q.csv", "Name;Value1;Value2;Category\n|Smith; J.|;1;2;|a||b|\n")

	_, rows, err := Load("q.csv", dir, delim.Dialect{Delimiter: ';', Quote: '|'})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Smith; J.", "1", "2", "a|b", "q"}, rows[0].Strings())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{name: "empty file", file: "empty.csv", content: "", want: ErrMalformed},
		{name: "only blank lines", file: "blank.csv", content: "\n\n", want: ErrMalformed},
		{name: "leading blank line", file: "lead.csv", content: "\nName,Value1,Value2,Category\nItem1,1,2,A\n", want: ErrMalformed},
		{name: "blank data line", file: "mid.csv", content: "Name,Value1,Value2,Category\nItem1,1,2,A\n\nItem2,3,4,B\n", want: ErrMalformed},
		{name: "trailing blank line", file: "tail.csv", content: "Name,Value1,Value2,Category\nItem1,1,2,A\n\n", want: ErrMalformed},
		{name: "insufficient columns", file: "cols.csv", content: "Name,Value\nItem1,10\n", want: ErrMalformed},
		{name: "too many header columns", file: "wide.csv", content: "a,b,c,d,e\n1,2,3,4,5\n", want: ErrMalformed},
		{name: "header only", file: "header.csv", content: "a,b,c,d\n", want: ErrMalformed},
		{name: "short data row", file: "short.csv", content: "a,b,c,d\nx,1,2\n", want: ErrMalformed},
		{name: "long data row", file: "long.csv", content: "a,b,c,d\nx,1,2,y,extra\n", want: ErrMalformed},
		{name: "unterminated quote", file: "quote.csv", content: "a,b,c,d\n|x,1,2,y\n", want: ErrMalformed},
		{name: "invalid number in value1", file: "v1.csv", content: "a,b,c,d\nItem1,not_a_number,20.3,A\n", want: ErrTypeMismatch},
		{name: "invalid number in value2", file: "v2.csv", content: "a,b,c,d\nItem1,1,x,A\n", want: ErrTypeMismatch},
		{name: "empty number", file: "e.csv", content: "a,b,c,d\nItem1,,2,A\n", want: ErrTypeMismatch},
		{name: "padded number", file: "p.csv", content: "a,b,c,d\nItem1, 1,2,A\n", want: ErrTypeMismatch},
		{name: "nan rejected", file: "n.csv", content: "a,b,c,d\nItem1,NaN,2,A\n", want: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			header, rows, err := Load(tt.file, dir, delim.Default)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
			assert.Nil(t, header)
			assert.Nil(t, rows)
		})
	}
}

func TestLoad_FieldErrorLocation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.csv", "Name,Value1,Value2,Category\nok,1,2,|A\nB|\nbad,3,oops,B\n")

	_, _, err := Load("bad.csv", dir, delim.Default)
	require.Error(t, err)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 4, fe.Line)
	assert.Equal(t, "Value2", fe.Field)
	assert.Equal(t, "oops", fe.Value)
	assert.True(t, strings.Contains(err.Error(), "bad.csv line 4"))
}

func TestLoad_BlankLineLocation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gap.csv", "Name,Value1,Value2,Category\nItem1,1,2,A\n\nItem2,3,4,B\n")

	_, _, err := Load("gap.csv", dir, delim.Default)
	require.Error(t, err)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Line)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "missing columns (got 0, want 4)")
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub"), "inner.csv", "a,b,c,d\nx,1,2,y\n")

	for _, name := range []string{
		"nonexistent.csv",
		"",
		"sub",
		"sub/inner.csv",
		"../etc/passwd",
		filepath.Join(dir, "sub", "inner.csv"),
	} {
		_, _, err := Load(name, dir, delim.Default)
		assert.True(t, errors.Is(err, ErrNotFound), "Load(%q) = %v", name, err)
	}
}

func TestLoad_SymlinkNotFollowed(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFile(t, root, "outside.csv", "a,b,c,d\nx,1,2,y\n")
	writeFile(t, dir, "inside.csv", "a,b,c,d\nx,1,2,y\n")

	if err := os.Symlink(filepath.Join("..", "outside.csv"), filepath.Join(dir, "escape.csv")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink("inside.csv", filepath.Join(dir, "alias.csv")))

	for _, name := range []string{"escape.csv", "alias.csv"} {
		_, _, err := Load(name, dir, delim.Default)
		assert.ErrorIs(t, err, ErrNotFound, "Load(%q)", name)
	}

	_, rows, err := Load("inside.csv", dir, delim.Default)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"10.5", 10.5, true},
		{"-3", -3, true},
		{"+4", 4, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"1e3", 1000, true},
		{"-2.5E-2", -0.025, true},
		{"", 0, false},
		{" 1", 0, false},
		{"1,000", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"0x10", 0, false},
		{"1_000", 0, false},
		{"1e400", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "test_data", fileStem("test_data.csv"))
	assert.Equal(t, "a.b", fileStem("a.b.csv"))
	assert.Equal(t, "noext", fileStem("noext"))
	assert.Equal(t, ".hidden", fileStem(".hidden"))
}
