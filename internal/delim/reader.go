package delim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnterminatedQuote is returned when input ends inside a quoted field.
var ErrUnterminatedQuote = errors.New("unterminated quoted field")

// ParseError records the line on which a record failed to parse.
type ParseError struct {
	Line int // 1-based line where the record started
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader reads records from delimited text.
type Reader struct {
	r       *bufio.Reader
	dialect Dialect

	bomChecked bool
	line       int // newlines consumed so far
	recordLine int // line the last record started on
}

// NewReader returns a Reader for the given dialect.
func NewReader(r io.Reader, d Dialect) *Reader {
	return &Reader{
		r:       bufio.NewReader(r),
		dialect: d,
	}
}

// Line returns the 1-based line number on which the most recently returned
// record started.
func (r *Reader) Line() int {
	return r.recordLine
}

// Read returns the next record. A blank line is returned as an empty,
// non-nil record. It returns io.EOF when the input is exhausted; the line
// ending of the last record does not start another one.
func (r *Reader) Read() ([]string, error) {
	if !r.bomChecked {
		r.bomChecked = true
		if err := skipBOM(r.r); err != nil {
			return nil, err
		}
	}

	return r.readRecord()
}

// ReadAll reads every remaining record.
func (r *Reader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// readRecord parses one record, which may span lines inside quotes.
func (r *Reader) readRecord() ([]string, error) {
	var (
		fields     []string
		field      strings.Builder
		started    bool // any rune consumed for this record
		sawQuote   bool // || is one empty field, a blank line is none
		quoted     bool // inside a quoted section
		fieldStart = true
	)
	r.recordLine = r.line + 1

	for {
		c, _, err := r.r.ReadRune()
		if err == io.EOF {
			if quoted {
				return nil, &ParseError{Line: r.recordLine, Err: ErrUnterminatedQuote}
			}
			if !started {
				return nil, io.EOF
			}
			return append(fields, field.String()), nil
		}
		if err != nil {
			return nil, err
		}
		started = true

		if quoted {
			if c == r.dialect.Quote {
				next, _, err := r.r.ReadRune()
				if err == nil && next == r.dialect.Quote {
					field.WriteRune(c)
					continue
				}
				if err == nil {
					_ = r.r.UnreadRune()
				}
				quoted = false
				continue
			}
			if c == '\n' {
				r.line++
			}
			field.WriteRune(c)
			continue
		}

		switch {
		case c == r.dialect.Delimiter:
			fields = append(fields, field.String())
			field.Reset()
			fieldStart = true
			continue

		case c == '\r' || c == '\n':
			if c == '\r' {
				if next, _, err := r.r.ReadRune(); err == nil && next != '\n' {
					_ = r.r.UnreadRune()
				}
			}
			r.line++
			if len(fields) == 0 && field.Len() == 0 && !sawQuote {
				return []string{}, nil
			}
			return append(fields, field.String()), nil

		case c == r.dialect.Quote && fieldStart:
			quoted = true
			sawQuote = true

		default:
			field.WriteRune(c)
		}
		fieldStart = false
	}
}
