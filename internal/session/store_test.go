package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"libris/pkg/model"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestStore_DefaultIDGenerator(t *testing.T) {
	store := NewStore(nil)

	var first, second string
	err := store.ExecuteTransaction(func(tx *Tx) error {
		first = tx.NewID()
		second = tx.NewID()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == "" || second == "" || first == second {
		t.Errorf("expected distinct non-empty ids, got %q and %q", first, second)
	}
}

func TestStore_CopySemantics(t *testing.T) {
	store := NewStore(sequentialIDs())
	err := store.ExecuteTransaction(func(tx *Tx) error {
		tx.PutBook(model.Book{ID: "b1", Title: "1984", Status: model.BookStatusAvailable})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutating a value read out of the store must not change stored state.
	store.View(func(tx *ReadTx) {
		b, _ := tx.Book("b1")
		b.Title = "mutated"
	})
	store.View(func(tx *ReadTx) {
		b, _ := tx.Book("b1")
		if b.Title != "1984" {
			t.Errorf("stored book mutated through a read copy: %q", b.Title)
		}
	})
}

func TestStore_TransactionErrorAbortsCaller(t *testing.T) {
	store := NewStore(sequentialIDs())
	sentinel := errors.New("boom")

	err := store.ExecuteTransaction(func(tx *Tx) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestStore_SetBookStatus(t *testing.T) {
	store := NewStore(sequentialIDs())
	if err := store.ExecuteTransaction(func(tx *Tx) error {
		tx.PutBook(model.Book{ID: "b1", Status: model.BookStatusAvailable})
		if !tx.SetBookStatus("b1", model.BookStatusBorrowed) {
			t.Error("expected SetBookStatus to succeed for existing book")
		}
		if tx.SetBookStatus("missing", model.BookStatusBorrowed) {
			t.Error("expected SetBookStatus to fail for missing book")
		}
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.View(func(tx *ReadTx) {
		b, _ := tx.Book("b1")
		if b.Status != model.BookStatusBorrowed {
			t.Errorf("expected borrowed, got %s", b.Status)
		}
	})
}

func TestStore_CloseRecord(t *testing.T) {
	store := NewStore(sequentialIDs())
	returnedAt := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	if err := store.ExecuteTransaction(func(tx *Tx) error {
		tx.PutRecord(model.BorrowRecord{ID: "r1", BookID: "b1"})

		if !tx.CloseRecord("r1", returnedAt) {
			t.Error("expected close of open record to succeed")
		}
		if tx.CloseRecord("r1", returnedAt) {
			t.Error("expected second close to fail")
		}
		if tx.CloseRecord("missing", returnedAt) {
			t.Error("expected close of missing record to fail")
		}
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.View(func(tx *ReadTx) {
		r, _ := tx.Record("r1")
		if r.ReturnDate == nil || !r.ReturnDate.Equal(returnedAt) {
			t.Errorf("expected return date %v, got %v", returnedAt, r.ReturnDate)
		}
	})
}

func TestStore_OpenRecordsOrdering(t *testing.T) {
	store := NewStore(sequentialIDs())
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	closed := base.Add(time.Hour)

	if err := store.ExecuteTransaction(func(tx *Tx) error {
		tx.PutRecord(model.BorrowRecord{ID: "old", BookID: "b1", BorrowDate: base})
		tx.PutRecord(model.BorrowRecord{ID: "new", BookID: "b2", BorrowDate: base.Add(48 * time.Hour)})
		tx.PutRecord(model.BorrowRecord{ID: "mid", BookID: "b3", BorrowDate: base.Add(24 * time.Hour)})
		tx.PutRecord(model.BorrowRecord{ID: "done", BookID: "b4", BorrowDate: base.Add(72 * time.Hour), ReturnDate: &closed})
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.View(func(tx *ReadTx) {
		open := tx.OpenRecords()
		if len(open) != 3 {
			t.Fatalf("expected 3 open records, got %d", len(open))
		}
		want := []string{"new", "mid", "old"}
		for i, id := range want {
			if open[i].ID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, open[i].ID)
			}
		}
	})
}

func TestStore_ConcurrentBorrowers(t *testing.T) {
	store := NewStore(sequentialIDs())
	if err := store.ExecuteTransaction(func(tx *Tx) error {
		tx.PutBook(model.Book{ID: "b1", Status: model.BookStatusAvailable})
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Many goroutines race to borrow the same book; exactly one may win.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.ExecuteTransaction(func(tx *Tx) error {
				book, ok := tx.Book("b1")
				if !ok || book.Status != model.BookStatusAvailable {
					return errors.New("unavailable")
				}
				tx.PutRecord(model.BorrowRecord{ID: tx.NewID(), BookID: "b1"})
				tx.SetBookStatus("b1", model.BookStatusBorrowed)
				return nil
			})
		}()
	}
	wg.Wait()

	store.View(func(tx *ReadTx) {
		if got := tx.CountRecords(); got != 1 {
			t.Errorf("expected exactly 1 record, got %d", got)
		}
	})
}

func TestSeedDemoData(t *testing.T) {
	now := time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)
	loanPeriod := 14 * 24 * time.Hour

	store := NewStore(sequentialIDs())
	if err := SeedDemoData(store, now, loanPeriod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.View(func(tx *ReadTx) {
		if got := tx.CountBooks(); got != 5 {
			t.Errorf("expected 5 books, got %d", got)
		}
		open := tx.OpenRecords()
		if len(open) != 2 {
			t.Fatalf("expected 2 open loans, got %d", len(open))
		}

		// Invariant: a book is borrowed iff an open record references it.
		borrowed := make(map[string]bool)
		for _, r := range open {
			borrowed[r.BookID] = true
		}
		for _, b := range tx.Books() {
			if (b.Status == model.BookStatusBorrowed) != borrowed[b.ID] {
				t.Errorf("book %q status %s inconsistent with ledger", b.Title, b.Status)
			}
		}

		// One loan overdue, one current.
		var overdue int
		for _, r := range open {
			if r.IsOverdue(now) {
				overdue++
			}
		}
		if overdue != 1 {
			t.Errorf("expected 1 overdue seeded loan, got %d", overdue)
		}
	})
}

func TestSeedDemoData_RefusesNonEmptyStore(t *testing.T) {
	store := NewStore(sequentialIDs())
	if err := store.ExecuteTransaction(func(tx *Tx) error {
		tx.PutBook(model.Book{ID: "b1"})
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := SeedDemoData(store, time.Now(), 14*24*time.Hour); err == nil {
		t.Fatal("expected seeding a non-empty store to fail")
	}
}
