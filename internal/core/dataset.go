package core

import (
	"fmt"

	"github.com/JonMunkholm/csvnexus/internal/delim"
)

// Dataset is a session's accumulated header and rows.
//
// The header is fixed by the first merge. A failed operation leaves the
// dataset unchanged. A Dataset is not safe for concurrent use.
type Dataset struct {
	header Header
	rows   []Row
}

// Header returns a copy of the dataset's header, nil before the first merge.
func (d *Dataset) Header() Header {
	return d.header.Clone()
}

// Rows returns a copy of the row slice. Rows themselves are shared.
func (d *Dataset) Rows() []Row {
	return append([]Row(nil), d.rows...)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Empty reports whether the dataset holds no rows.
func (d *Dataset) Empty() bool {
	return len(d.rows) == 0
}

// Reset discards the header and rows.
func (d *Dataset) Reset() {
	d.header = nil
	d.rows = nil
}

// Merge appends rows. The first merge fixes the header; later merges must
// match it exactly.
func (d *Dataset) Merge(h Header, rows []Row) error {
	if d.header == nil {
		d.header = h.Clone()
		d.rows = append(d.rows, rows...)
		return nil
	}
	if !Equal(h, d.header) {
		return fmt.Errorf("merge: have %v, got %v: %w", []string(d.header), []string(h), ErrSchemaMismatch)
	}
	d.rows = append(d.rows, rows...)
	return nil
}

// Add loads fileName from dir and merges it. Returns the number of rows
// added.
func (d *Dataset) Add(fileName, dir string, dialect delim.Dialect) (int, error) {
	h, rows, err := Load(fileName, dir, dialect)
	if err != nil {
		return 0, err
	}
	if err := d.Merge(h, rows); err != nil {
		return 0, fmt.Errorf("add %q: %w", fileName, err)
	}
	return len(rows), nil
}

// Sort reorders the rows by column.
func (d *Dataset) Sort(column string, reverse bool) error {
	sorted, err := Sort(d.rows, d.header, column, reverse)
	if err != nil {
		return err
	}
	d.rows = sorted
	return nil
}

// Export writes the dataset to fileName inside dir.
func (d *Dataset) Export(fileName, dir string, dialect delim.Dialect, force bool) error {
	return Write(fileName, d.rows, d.header, dir, dialect, force)
}
