package linksheet

import (
	"errors"
	"fmt"
)

// ErrNoLongURL indicates the shorten sheet has no URL to shorten.
var ErrNoLongURL = errors.New("no url to shorten")

// AuthorizationError indicates the acting identity does not own the sheet.
type AuthorizationError struct {
	Actor  string
	Owners []string
	// Prompt is the message shown to the user.
	Prompt string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%q is not an owner of the sheet", e.Actor)
}

// EmptyResultError indicates the provider has no links for the account.
type EmptyResultError struct {
	Prompt string
}

func (e *EmptyResultError) Error() string {
	return "no short urls found"
}

// StorageError represents a failure of the tabular storage.
type StorageError struct {
	SheetName string
	Operation string // "read", "write", "flush"
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in sheet %q (%s): %v", e.SheetName, e.Operation, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(sheetName, operation string, err error) *StorageError {
	return &StorageError{
		SheetName: sheetName,
		Operation: operation,
		Err:       err,
	}
}
