package errors

import "errors"

var (
	ErrNotFound = errors.New("borrow record not found")

	ErrAlreadyReturned = errors.New("borrow record already closed")
)
