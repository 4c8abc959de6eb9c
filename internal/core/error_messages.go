// error_messages.go maps technical errors to user-facing messages.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// matching pattern wins, so specific patterns come before general ones. The
// full error code reference lives in the package documentation (doc.go).

package core

import "strings"

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error substrings (case-insensitive) to user
// messages. Order matters: specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// File handling
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a CSV or Excel (.xlsx) file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parse csv",
		msg: UserMessage{
			Message: "The file could not be read as delimited text",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "open workbook",
		msg: UserMessage{
			Message: "The spreadsheet could not be opened",
			Action:  "Re-save the file as .xlsx and upload it again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "read sheet",
		msg: UserMessage{
			Message: "The spreadsheet could not be read",
			Action:  "Re-save the file as .xlsx and upload it again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with a header row and at least one record",
			Code:    "FILE005",
		},
	},
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "The file has a header but no records",
			Action:  "Upload a file with at least one data row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the size limit",
			Action:  "Split the file or export a smaller range",
			Code:    "FILE006",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the size limit",
			Action:  "Split the file or export a smaller range",
			Code:    "FILE006",
		},
	},

	// Data / mapping
	{
		pattern: "no data available",
		msg: UserMessage{
			Message: "No data is loaded",
			Action:  "Upload a file or enable the example data",
			Code:    "DATA001",
		},
	},
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "A mapped column does not exist in the table",
			Action:  "Re-map the columns to ones present in your file",
			Code:    "DATA002",
		},
	},

	// Sessions
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Upload the file again to start a new session",
			Code:    "SES001",
		},
	},
	{
		pattern: "too many active sessions",
		msg: UserMessage{
			Message: "The server is handling too many datasets right now",
			Action:  "Try again in a few minutes",
			Code:    "SES002",
		},
	},

	// Database source
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The configured data source is unreachable",
			Action:  "Try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "The data source connection was interrupted",
			Action:  "Try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Loading from the data source took too long",
			Action:  "Narrow the configured query or try again later",
			Code:    "DB002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try again later",
			Code:    "DB002",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message with an
// action suggestion and a support code. Returns the zero UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// IsUserFacing reports whether err matches a known pattern (not the ERR000
// fallback) and can be shown to users as-is.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
