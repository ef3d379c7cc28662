package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned for a category-select outside the
	// fixed category set. The dispatcher only forwards known labels, so
	// this is an integration bug, not a user-facing condition.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNoPendingCategory means free text arrived from a user with no
	// category selection in flight. Not an error state for the user;
	// callers simply ignore the message.
	ErrNoPendingCategory = errors.New("no pending category selection")

	// ErrInvalidAmount means the amount text did not parse as a finite
	// non-negative number. The pending selection is preserved.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNoExpenses means the store holds no records at all, so there is
	// nothing to export.
	ErrNoExpenses = errors.New("no expenses to export")
)

// ExportError wraps any failure while building the CSV export. The
// message is surfaced to the user verbatim.
type ExportError struct {
	Message string
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed: %s", e.Message)
}
