package core

import (
	"errors"
	"fmt"
)

// Error kinds. Operations wrap these with context; test with errors.Is.
var (
	ErrNotFound       = errors.New("file not found")
	ErrMalformed      = errors.New("malformed file")
	ErrTypeMismatch   = errors.New("invalid number")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrSchemaMismatch = errors.New("header mismatch")
	ErrAlreadyExists  = errors.New("file already exists")
)

// FieldError describes a single bad cell or record.
type FieldError struct {
	File    string // Source file name
	Line    int    // 1-based line the record started on
	Field   string // Column name, empty for record-level problems
	Value   string // The offending value
	Message string // Human-readable detail
	Kind    error  // One of the Err* kinds
}

func (e *FieldError) Error() string {
	loc := fmt.Sprintf("%s line %d", e.File, e.Line)
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s %q: %v", loc, e.Field, e.Message, e.Value, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", loc, e.Message, e.Kind)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}
