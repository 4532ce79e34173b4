// Package core provides the data-table engine behind the csvnexus shell.
//
// This package holds all domain logic independent of the interactive shell.
// It never reads user input; callers supply validated arguments and render
// results or errors.
//
// # Architecture
//
// Four operations compose linearly:
//
//   - [Load] parses a delimited file into a validated [Header] and rows,
//     appending the derived provenance column [DerivedColumn].
//   - [Equal] gates a merge by comparing two headers exactly.
//   - [Sort] orders rows by a named column with per-cell numeric or text
//     comparison.
//   - [Write] serialises a header and rows back to a delimited file.
//
// A [Dataset] is the session's accumulated header and rows. It wraps the
// operations above so that a failed load, sort or export leaves it
// unchanged.
//
// # Load Shape
//
// Source files have exactly four columns. Columns two and three are numeric:
//
//	Name,Value1,Value2,Category
//	Item1,10.5,20.3,A
//
// Loading test_data.csv yields the header
// [Name Value1 Value2 Category département] and rows ending in "test_data".
//
// # Error Handling
//
// Every failure wraps one of the sentinel kinds so callers can use
// errors.Is:
//
//   - [ErrNotFound]: file absent from the working directory
//   - [ErrMalformed]: empty file, wrong column count, too few records
//   - [ErrTypeMismatch]: non-numeric value in a numeric column
//   - [ErrUnknownColumn]: sort column absent from the header
//   - [ErrSchemaMismatch]: merge with an incompatible header
//   - [ErrAlreadyExists]: write would overwrite without permission
//
// Row-level failures are reported as [*FieldError] carrying the line and
// column.
package core
