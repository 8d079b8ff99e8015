package repository

import (
	"context"
	"fmt"
	"strings"

	catalogerrors "libris/internal/catalog/errors"
	"libris/internal/session"
	"libris/pkg/model"
)

// SearchFilter is the catalog search predicate: free text matched
// case-insensitively against title and author and literally against ISBN,
// intersected with optional exact category and status filters.
type SearchFilter struct {
	Query    string
	Category string
	Status   model.BookStatus
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id string) (*model.Book, error)
	FindAll(ctx context.Context) ([]*model.Book, error)
	Update(ctx context.Context, id string, book *model.Book) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter SearchFilter) ([]*model.Book, error)
}

type memoryBookRepository struct {
	store *session.Store
}

func NewMemoryBookRepository(store *session.Store) BookRepository {
	return &memoryBookRepository{store: store}
}

func (r *memoryBookRepository) Create(_ context.Context, book *model.Book) error {
	return r.store.ExecuteTransaction(func(tx *session.Tx) error {
		book.ID = tx.NewID()
		book.Status = model.BookStatusAvailable
		tx.PutBook(*book)
		return nil
	})
}

func (r *memoryBookRepository) FindByID(_ context.Context, id string) (*model.Book, error) {
	var (
		book model.Book
		ok   bool
	)
	r.store.View(func(tx *session.ReadTx) {
		book, ok = tx.Book(id)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
	}
	return &book, nil
}

func (r *memoryBookRepository) FindAll(_ context.Context) ([]*model.Book, error) {
	var out []*model.Book
	r.store.View(func(tx *session.ReadTx) {
		for _, b := range tx.Books() {
			book := b
			out = append(out, &book)
		}
	})
	return out, nil
}

// Update replaces the book's fields. Status and ID are always carried over
// from the stored book; they are not settable through the catalog.
func (r *memoryBookRepository) Update(_ context.Context, id string, book *model.Book) error {
	return r.store.ExecuteTransaction(func(tx *session.Tx) error {
		existing, ok := tx.Book(id)
		if !ok {
			return fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
		}
		book.ID = existing.ID
		book.Status = existing.Status
		tx.PutBook(*book)
		return nil
	})
}

func (r *memoryBookRepository) Delete(_ context.Context, id string) error {
	return r.store.ExecuteTransaction(func(tx *session.Tx) error {
		if _, ok := tx.Book(id); !ok {
			return fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
		}
		if _, open := tx.OpenRecordForBook(id); open {
			return fmt.Errorf("%w: %s", catalogerrors.ErrOpenLoan, id)
		}
		tx.DeleteBook(id)
		return nil
	})
}

// Search re-evaluates the predicate against current state on every call and
// returns a fresh snapshot.
func (r *memoryBookRepository) Search(_ context.Context, filter SearchFilter) ([]*model.Book, error) {
	var out []*model.Book
	r.store.View(func(tx *session.ReadTx) {
		for _, b := range tx.Books() {
			if matches(&b, filter) {
				book := b
				out = append(out, &book)
			}
		}
	})
	return out, nil
}

func matches(b *model.Book, filter SearchFilter) bool {
	if filter.Status != "" && b.Status != filter.Status {
		return false
	}
	if filter.Category != "" && b.Category != filter.Category {
		return false
	}
	if filter.Query == "" {
		return true
	}

	q := strings.ToLower(filter.Query)
	if strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) {
		return true
	}
	// ISBN matches the literal query: digits and hyphens, no case folding.
	return b.ISBN != "" && strings.Contains(b.ISBN, filter.Query)
}
