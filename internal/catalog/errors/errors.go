package errors

import "errors"

var (
	ErrNotFound = errors.New("book not found")

	// ErrOpenLoan guards referential integrity: a book with an open borrow
	// record cannot be deleted.
	ErrOpenLoan = errors.New("book has an open loan")
)
