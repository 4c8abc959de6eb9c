package core

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when neither an uploaded file nor the example
// dataset produced a table for the current lookup.
var ErrNoData = errors.New("no data available: upload a file or enable the example dataset")

// ErrSessionNotFound is returned when a session ID does not exist or has
// expired.
var ErrSessionNotFound = errors.New("session not found")

// ErrTooManySessions is returned when the session store is at capacity.
var ErrTooManySessions = errors.New("too many active sessions")

// InvalidColumnError reports a resolved or overridden column name that does
// not exist in the table's schema. It is a caller configuration error and
// always fails the lookup rather than silently defaulting to another column.
type InvalidColumnError struct {
	Column string
	Role   Role
}

func (e *InvalidColumnError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("column not found: no column mapped for %s", e.Role)
	}
	return fmt.Sprintf("column not found: %q (mapped for %s) is not in the table", e.Column, e.Role)
}

// IsInvalidColumn reports whether err is an InvalidColumnError.
func IsInvalidColumn(err error) bool {
	var ice *InvalidColumnError
	return errors.As(err, &ice)
}
