package session

import (
	"fmt"
	"time"

	"libris/pkg/model"
)

// SeedDemoData loads the demo catalog: five books, two of them out on open
// loans (one current, one overdue). Intended for local development only.
func SeedDemoData(store *Store, now time.Time, loanPeriod time.Duration) error {
	books := []model.Book{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Category: "Literature", ISBN: "978-0-7432-7356-5", PublishedYear: 1925, Status: model.BookStatusAvailable},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Category: "Literature", ISBN: "978-0-06-112008-4", PublishedYear: 1960, Status: model.BookStatusBorrowed},
		{Title: "1984", Author: "George Orwell", Category: "Fiction", ISBN: "978-0-452-28423-4", PublishedYear: 1949, Status: model.BookStatusAvailable},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Category: "Literature", ISBN: "978-0-14-143951-8", PublishedYear: 1813, Status: model.BookStatusAvailable},
		{Title: "The Catcher in the Rye", Author: "J.D. Salinger", Category: "Literature", ISBN: "978-0-316-76948-0", PublishedYear: 1951, Status: model.BookStatusBorrowed},
	}

	type loan struct {
		bookIndex   int
		studentName string
		studentID   string
		borrowedAgo time.Duration
	}
	loans := []loan{
		// Borrowed 4 days ago: still current with the default 14-day period.
		{bookIndex: 1, studentName: "Alice Johnson", studentID: "STU001", borrowedAgo: 4 * 24 * time.Hour},
		// Borrowed past the loan period: overdue on arrival.
		{bookIndex: 4, studentName: "Bob Smith", studentID: "STU002", borrowedAgo: loanPeriod + 2*24*time.Hour},
	}

	return store.ExecuteTransaction(func(tx *Tx) error {
		if tx.CountBooks() > 0 || tx.CountRecords() > 0 {
			return fmt.Errorf("refusing to seed a non-empty store")
		}

		ids := make([]string, len(books))
		for i, b := range books {
			b.ID = tx.NewID()
			ids[i] = b.ID
			tx.PutBook(b)
		}

		for _, l := range loans {
			borrowDate := now.Add(-l.borrowedAgo)
			tx.PutRecord(model.BorrowRecord{
				ID:          tx.NewID(),
				BookID:      ids[l.bookIndex],
				StudentName: l.studentName,
				StudentID:   l.studentID,
				BorrowDate:  borrowDate,
				DueDate:     borrowDate.Add(loanPeriod),
			})
		}

		return nil
	})
}
