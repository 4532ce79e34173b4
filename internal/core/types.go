package core

import "strconv"

// DerivedColumn is appended to every loaded header. Its values are the stem
// of the source file name.
const DerivedColumn = "département"

// SourceColumns is the number of columns a source file must have.
const SourceColumns = 4

// Header is an ordered list of column names.
type Header []string

// Index returns the position of column, or -1 if it is absent.
func (h Header) Index(column string) int {
	for i, name := range h {
		if name == column {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of h.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	return append(Header(nil), h...)
}

// Kind says how a Value compares.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	default:
		return "text"
	}
}

// Value is a single cell. Numbers keep the text they were parsed from so
// writing a loaded row reproduces the source exactly.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric Value rendered in shortest form.
func Number(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64), num: f}
}

// parsedNumber returns a numeric Value that remembers its source text.
func parsedNumber(text string, f float64) Value {
	return Value{kind: KindNumber, text: text, num: f}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// String returns the value as written to a file.
func (v Value) String() string { return v.text }

// Float returns the numeric value and true for KindNumber values.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Equal reports whether two values have the same kind and text.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.text == o.text
}

// Row is an ordered list of values aligned with a Header.
type Row []Value

// Strings returns the row as written to a file.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}

// Clone returns an independent copy of r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return append(Row(nil), r...)
}

// TextRow builds a row of text values. Handy for tests and callers that
// already hold strings.
func TextRow(fields ...string) Row {
	row := make(Row, len(fields))
	for i, f := range fields {
		row[i] = Text(f)
	}
	return row
}
