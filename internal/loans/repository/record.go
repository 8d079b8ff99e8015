package repository

import (
	"context"
	"fmt"
	"strings"

	loanserrors "libris/internal/loans/errors"
	"libris/internal/session"
	"libris/pkg/model"
)

// OpenLoan pairs an open borrow record with its book. BookFound is false
// only for ledgers seeded before the delete-with-open-loan guard existed;
// current state cannot produce a dangling reference.
type OpenLoan struct {
	Record    model.BorrowRecord
	Book      model.Book
	BookFound bool
}

type RecordRepository interface {
	FindByID(ctx context.Context, id string) (*model.BorrowRecord, error)

	// FindOpen returns open loans joined with book data, most recently
	// borrowed first. A non-empty query filters case-insensitively on
	// student name, student id, book title and book author.
	FindOpen(ctx context.Context, query string) ([]*OpenLoan, error)

	// CountBooks reports the catalog size; loans and books share one
	// state object, so the count is consistent with FindOpen.
	CountBooks(ctx context.Context) int

	ExecuteTransaction(ctx context.Context, fn session.TxFunc) error
}

type memoryRecordRepository struct {
	store *session.Store
}

func NewMemoryRecordRepository(store *session.Store) RecordRepository {
	return &memoryRecordRepository{store: store}
}

func (r *memoryRecordRepository) FindByID(_ context.Context, id string) (*model.BorrowRecord, error) {
	var (
		record model.BorrowRecord
		ok     bool
	)
	r.store.View(func(tx *session.ReadTx) {
		record, ok = tx.Record(id)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", loanserrors.ErrNotFound, id)
	}
	return &record, nil
}

func (r *memoryRecordRepository) FindOpen(_ context.Context, query string) ([]*OpenLoan, error) {
	var out []*OpenLoan
	r.store.View(func(tx *session.ReadTx) {
		for _, rec := range tx.OpenRecords() {
			book, found := tx.Book(rec.BookID)
			loan := &OpenLoan{Record: rec, Book: book, BookFound: found}
			if matches(loan, query) {
				out = append(out, loan)
			}
		}
	})
	return out, nil
}

func (r *memoryRecordRepository) CountBooks(_ context.Context) int {
	var count int
	r.store.View(func(tx *session.ReadTx) {
		count = tx.CountBooks()
	})
	return count
}

func (r *memoryRecordRepository) ExecuteTransaction(_ context.Context, fn session.TxFunc) error {
	return r.store.ExecuteTransaction(fn)
}

func matches(loan *OpenLoan, query string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(loan.Record.StudentName), q) ||
		strings.Contains(strings.ToLower(loan.Record.StudentID), q) {
		return true
	}
	if !loan.BookFound {
		return false
	}
	return strings.Contains(strings.ToLower(loan.Book.Title), q) ||
		strings.Contains(strings.ToLower(loan.Book.Author), q)
}
