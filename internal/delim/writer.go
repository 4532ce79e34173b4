package delim

import (
	"bufio"
	"io"
	"strings"
)

// Writer writes records as delimited text.
type Writer struct {
	w       *bufio.Writer
	dialect Dialect
}

// NewWriter returns a Writer for the given dialect.
func NewWriter(w io.Writer, d Dialect) *Writer {
	return &Writer{
		w:       bufio.NewWriter(w),
		dialect: d,
	}
}

// Write writes a single record. Output is buffered; call Flush.
func (w *Writer) Write(record []string) error {
	for i, field := range record {
		if i > 0 {
			if _, err := w.w.WriteRune(w.dialect.Delimiter); err != nil {
				return err
			}
		}

		// A lone empty field would otherwise read back as a blank line.
		if !w.needsQuotes(field) && !(len(record) == 1 && field == "") {
			if _, err := w.w.WriteString(field); err != nil {
				return err
			}
			continue
		}

		if err := w.writeQuoted(field); err != nil {
			return err
		}
	}

	eol := "\n"
	if w.dialect.CRLF {
		eol = "\r\n"
	}
	_, err := w.w.WriteString(eol)
	return err
}

// WriteAll writes records and flushes.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) writeQuoted(field string) error {
	q := w.dialect.Quote
	if _, err := w.w.WriteRune(q); err != nil {
		return err
	}
	for _, c := range field {
		if c == q {
			if _, err := w.w.WriteRune(q); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteRune(c); err != nil {
			return err
		}
	}
	_, err := w.w.WriteRune(q)
	return err
}

func (w *Writer) needsQuotes(field string) bool {
	if field == "" {
		return false
	}
	return strings.ContainsRune(field, w.dialect.Delimiter) ||
		strings.ContainsRune(field, w.dialect.Quote) ||
		strings.ContainsAny(field, "\r\n")
}
