// Package delim reads and writes delimited text with a configurable
// delimiter and quote character.
//
// encoding/csv always quotes with '"'. Files handled by csvnexus quote with
// '|' by default, so this package provides its own reader and writer that
// follow the same minimal-quoting rules with any quote rune:
//
//   - A field is quoted only if it starts with the quote rune.
//   - Inside a quoted field, a doubled quote is a literal quote, and
//     delimiters and line breaks are literal.
//   - Text following a closing quote is appended to the field.
//   - Records end at LF, CRLF or a bare CR. A blank line is a record with
//     no fields.
//
// The writer quotes a field only when it contains the delimiter, the quote
// rune, CR or LF, so anything it writes reads back unchanged.
package delim

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Dialect describes the delimiter and quote runes of a file.
type Dialect struct {
	Delimiter rune
	Quote     rune

	// CRLF makes writers end records with \r\n. Readers accept both.
	CRLF bool
}

// Default is the dialect used when none is configured: comma separated,
// '|' quoted.
var Default = Dialect{Delimiter: ',', Quote: '|'}

var errInvalidDialect = errors.New("invalid dialect")

// Validate reports whether the dialect can be parsed unambiguously.
func (d Dialect) Validate() error {
	if !validRune(d.Delimiter) {
		return fmt.Errorf("%w: delimiter %q", errInvalidDialect, d.Delimiter)
	}
	if !validRune(d.Quote) {
		return fmt.Errorf("%w: quote %q", errInvalidDialect, d.Quote)
	}
	if d.Delimiter == d.Quote {
		return fmt.Errorf("%w: delimiter and quote are both %q", errInvalidDialect, d.Delimiter)
	}
	return nil
}

func validRune(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}

// ParseRune converts a one-character configuration value into a rune.
func ParseRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || !validRune(r) {
		return 0, fmt.Errorf("%w: %q must be a single character", errInvalidDialect, s)
	}
	return r, nil
}

// IsInvalidDialect reports whether err came from dialect validation.
func IsInvalidDialect(err error) bool {
	return errors.Is(err, errInvalidDialect)
}
