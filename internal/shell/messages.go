package shell

// messages.go maps core and shell errors to user-friendly messages with codes
// for support reference.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File not found: the file is not in the working directory
//	FILE002 - Malformed file: empty, wrong column count, or no data rows
//	FILE004 - No files: no candidate files in the working directory
//	FILE006 - Already exists: export target exists and overwrite was declined
//	FILE007 - Wrong extension: export name does not end with the file extension
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL002 - Invalid number: a numeric column holds non-numeric text
//	VAL005 - Column not found: sort column is not in the header
//	VAL007 - Header mismatch: merged file has a different header
//
// # Default Error (ERR000)
//
// Fallback when no kind matches. The technical error is logged.

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/csvnexus/internal/core"
)

// Shell-level error kinds.
var (
	ErrNoFiles      = errors.New("no candidate files in directory")
	ErrBadExtension = errors.New("wrong file extension")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorKind pairs an error kind with its user message. The first kind that
// matches via errors.Is wins.
type errorKind struct {
	kind error
	msg  UserMessage
}

var errorKinds = []errorKind{
	{
		kind: core.ErrNotFound,
		msg: UserMessage{
			Message: "File not found in the working directory",
			Action:  "Run list to see the available files",
			Code:    "FILE001",
		},
	},
	{
		kind: core.ErrTypeMismatch,
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Columns 2 and 3 must hold plain decimal numbers",
			Code:    "VAL002",
		},
	},
	{
		kind: core.ErrMalformed,
		msg: UserMessage{
			Message: "File is not a valid data file",
			Action:  "Ensure it has a header of exactly 4 columns and at least one data row",
			Code:    "FILE002",
		},
	},
	{
		kind: core.ErrUnknownColumn,
		msg: UserMessage{
			Message: "No column with this name",
			Action:  "Use a column name exactly as shown by view",
			Code:    "VAL005",
		},
	},
	{
		kind: core.ErrSchemaMismatch,
		msg: UserMessage{
			Message: "Header does not match the current dataset",
			Action:  "Only files with identical headers can be merged",
			Code:    "VAL007",
		},
	},
	{
		kind: core.ErrAlreadyExists,
		msg: UserMessage{
			Message: "A file with this name already exists",
			Action:  "Choose another name or confirm the overwrite",
			Code:    "FILE006",
		},
	},
	{
		kind: ErrNoFiles,
		msg: UserMessage{
			Message: "No data files found",
			Action:  "Place files in the working directory and try again",
			Code:    "FILE004",
		},
	},
	{
		kind: ErrBadExtension,
		msg: UserMessage{
			Message: "File name does not have the correct extension",
			Action:  "Use a name ending in the configured extension",
			Code:    "FILE007",
		},
	},
}

// defaultMessage is returned when no kind matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again; details are in the log",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, ek := range errorKinds {
		if errors.Is(err, ek.kind) {
			return ek.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
