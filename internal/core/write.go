package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JonMunkholm/csvnexus/internal/delim"
)

// Write serialises h and rows to fileName inside dir.
//
// It returns ErrAlreadyExists if the target exists and force is false.
// Rows must have exactly len(h) fields. The file is written to a temporary
// name and renamed into place, so on error the directory is unchanged. A new
// file is created with mode 0666 before umask; an overwritten file keeps its
// permission bits.
func Write(fileName string, rows []Row, h Header, dir string, d delim.Dialect, force bool) error {
	if err := checkFileName(fileName); err != nil {
		return fmt.Errorf("write: %v: %w", err, ErrMalformed)
	}
	for i, row := range rows {
		if len(row) != len(h) {
			return fmt.Errorf("write %q: row %d has %d fields, header has %d: %w",
				fileName, i+1, len(row), len(h), ErrMalformed)
		}
	}

	path := filepath.Join(dir, fileName)
	existing, err := lstatIfExists(path)
	if err != nil {
		return fmt.Errorf("write %q: %w", fileName, err)
	}
	exists := existing != nil
	if exists && !force {
		return fmt.Errorf("write %q: %w", fileName, ErrAlreadyExists)
	}

	// New files get 0666 less the process umask, like os.Create.
	tmpName := filepath.Join(dir, "."+fileName+"."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpName, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		return fmt.Errorf("write %q: %w", fileName, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := delim.NewWriter(tmp, d)
	if err := w.Write(h); err != nil {
		return fmt.Errorf("write %q: %w", fileName, err)
	}
	for _, row := range rows {
		if err := w.Write(row.Strings()); err != nil {
			return fmt.Errorf("write %q: %w", fileName, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %q: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %q: %w", fileName, err)
	}
	if existing != nil && existing.Mode().IsRegular() {
		if err := os.Chmod(tmpName, existing.Mode().Perm()); err != nil {
			return fmt.Errorf("write %q: %w", fileName, err)
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write %q: %w", fileName, err)
	}
	committed = true

	slog.Debug("file written",
		"file", fileName,
		"rows", len(rows),
		"overwrite", exists,
	)
	return nil
}

// lstatIfExists returns the entry at path, or nil if there is none.
func lstatIfExists(path string) (fs.FileInfo, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return info, err
}
