package core

// load.go reads a source file into a validated Header and rows.
//
// Validation happens at two levels:
//  1. Structure: at least one header and one data record, exactly
//     SourceColumns fields per record
//  2. Cells: columns two and three must parse as numbers
//
// The first failure aborts the load; nothing is returned on error.

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/csvnexus/internal/delim"
)

// numericColumns are the zero-based source positions parsed as numbers.
var numericColumns = map[int]bool{1: true, 2: true}

// Load reads fileName from dir.
//
// The returned header has DerivedColumn appended, and each row ends with the
// file name minus its extension.
func Load(fileName, dir string, d delim.Dialect) (Header, []Row, error) {
	path, info, err := resolvePath(dir, fileName)
	if err != nil {
		return nil, nil, fmt.Errorf("load %q: %w", fileName, err)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("load %q: %w", fileName, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("load %q: %w", fileName, err)
	}
	defer f.Close()

	// The entry may have been swapped for a link since it was checked.
	opened, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("load %q: %w", fileName, err)
	}
	if !os.SameFile(info, opened) {
		return nil, nil, fmt.Errorf("load %q: %w", fileName, ErrNotFound)
	}

	counter := delim.NewCountingReader(f)
	header, rows, err := Parse(fileName, counter, d)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("file loaded",
		"file", fileName,
		"rows", len(rows),
		"bytes", counter.BytesRead,
	)
	return header, rows, nil
}

// Parse reads source records from r. fileName names the source for the
// derived column and for error messages.
func Parse(fileName string, r io.Reader, d delim.Dialect) (Header, []Row, error) {
	reader := delim.NewReader(r, d)

	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *delim.ParseError
			if errors.As(err, &pe) {
				return nil, nil, &FieldError{
					File:    fileName,
					Line:    pe.Line,
					Message: pe.Err.Error(),
					Kind:    ErrMalformed,
				}
			}
			return nil, nil, fmt.Errorf("load %q: %w", fileName, err)
		}
		records = append(records, record)
		lines = append(lines, reader.Line())
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("load %q: file is empty: %w", fileName, ErrMalformed)
	}
	if n := len(records[0]); n != SourceColumns {
		return nil, nil, fmt.Errorf("load %q: header has %d columns, want exactly %d: %w",
			fileName, n, SourceColumns, ErrMalformed)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("load %q: need a header and at least one data row: %w",
			fileName, ErrMalformed)
	}

	header := make(Header, 0, SourceColumns+1)
	header = append(header, records[0]...)
	header = append(header, DerivedColumn)

	stem := fileStem(fileName)
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		line := lines[i+1]

		if len(record) != SourceColumns {
			msg := "missing columns"
			if len(record) > SourceColumns {
				msg = "too many columns"
			}
			return nil, nil, &FieldError{
				File:    fileName,
				Line:    line,
				Message: fmt.Sprintf("%s (got %d, want %d)", msg, len(record), SourceColumns),
				Kind:    ErrMalformed,
			}
		}

		row := make(Row, 0, SourceColumns+1)
		for col, raw := range record {
			if !numericColumns[col] {
				row = append(row, Text(raw))
				continue
			}
			f, ok := ParseNumber(raw)
			if !ok {
				return nil, nil, &FieldError{
					File:    fileName,
					Line:    line,
					Field:   header[col],
					Value:   raw,
					Message: "expected a number, got",
					Kind:    ErrTypeMismatch,
				}
			}
			row = append(row, parsedNumber(raw, f))
		}
		row = append(row, Text(stem))
		rows = append(rows, row)
	}

	return header, rows, nil
}

// resolvePath joins dir and name, accepting only a plain file name that
// exists as a regular file directly inside dir. Symbolic links are not
// followed, so nothing outside dir is reached through one.
func resolvePath(dir, name string) (string, fs.FileInfo, error) {
	if err := checkFileName(name); err != nil {
		return "", nil, ErrNotFound
	}
	path := filepath.Join(dir, name)

	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}
	if !info.Mode().IsRegular() {
		return "", nil, ErrNotFound
	}
	return path, info, nil
}

// checkFileName rejects anything that is not a single local path element.
func checkFileName(name string) error {
	if name == "" || name != filepath.Base(name) || !filepath.IsLocal(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}

// fileStem strips the extension from name. Dot files keep their name.
func fileStem(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if strings.Trim(stem, ".") == "" {
		return name
	}
	return stem
}
