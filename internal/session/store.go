package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"libris/pkg/model"
)

// IDFunc produces fresh unique identifiers for books and borrow records.
// Injected so tests can use a deterministic sequence.
type IDFunc func() string

// UUIDGenerator is the production id generator.
func UUIDGenerator() string {
	return uuid.NewString()
}

// Store is the application session state: the book catalog and the loan
// ledger behind one lock. Both collections live and die with the process;
// there is no persistence layer.
//
// All reads go through View, all mutations through ExecuteTransaction, so
// borrow and return can touch both collections as a single visible unit.
type Store struct {
	mu    sync.RWMutex
	newID IDFunc

	books   map[string]model.Book
	records map[string]model.BorrowRecord
}

func NewStore(newID IDFunc) *Store {
	if newID == nil {
		newID = UUIDGenerator
	}
	return &Store{
		newID:   newID,
		books:   make(map[string]model.Book),
		records: make(map[string]model.BorrowRecord),
	}
}

// TxFunc runs with exclusive access to the store. It must perform all of
// its checks before its first write: a returned error aborts the caller
// but does not roll back writes already made.
type TxFunc func(tx *Tx) error

// ViewFunc runs with shared read access to the store.
type ViewFunc func(tx *ReadTx)

func (s *Store) View(fn ViewFunc) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&ReadTx{s: s})
}

func (s *Store) ExecuteTransaction(fn TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{ReadTx{s: s}})
}

// ReadTx exposes read access to both collections. All returned values are
// copies; mutating them does not touch the store.
type ReadTx struct {
	s *Store
}

func (tx *ReadTx) Book(id string) (model.Book, bool) {
	b, ok := tx.s.books[id]
	return b, ok
}

func (tx *ReadTx) Books() []model.Book {
	out := make([]model.Book, 0, len(tx.s.books))
	for _, b := range tx.s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (tx *ReadTx) Record(id string) (model.BorrowRecord, bool) {
	r, ok := tx.s.records[id]
	return r, ok
}

// OpenRecords returns all records without a return date, most recently
// borrowed first.
func (tx *ReadTx) OpenRecords() []model.BorrowRecord {
	var out []model.BorrowRecord
	for _, r := range tx.s.records {
		if r.IsOpen() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowDate.After(out[j].BorrowDate) })
	return out
}

// OpenRecordForBook returns the at-most-one open record referencing bookID.
func (tx *ReadTx) OpenRecordForBook(bookID string) (model.BorrowRecord, bool) {
	for _, r := range tx.s.records {
		if r.BookID == bookID && r.IsOpen() {
			return r, true
		}
	}
	return model.BorrowRecord{}, false
}

func (tx *ReadTx) CountBooks() int {
	return len(tx.s.books)
}

func (tx *ReadTx) CountRecords() int {
	return len(tx.s.records)
}

// Tx extends ReadTx with mutations. Only obtainable via ExecuteTransaction.
type Tx struct {
	ReadTx
}

func (tx *Tx) NewID() string {
	return tx.s.newID()
}

func (tx *Tx) PutBook(b model.Book) {
	tx.s.books[b.ID] = b
}

func (tx *Tx) DeleteBook(id string) {
	delete(tx.s.books, id)
}

func (tx *Tx) SetBookStatus(id string, status model.BookStatus) bool {
	b, ok := tx.s.books[id]
	if !ok {
		return false
	}
	b.Status = status
	tx.s.books[id] = b
	return true
}

func (tx *Tx) PutRecord(r model.BorrowRecord) {
	tx.s.records[r.ID] = r
}

// CloseRecord stamps the return date on an open record. Records are never
// deleted and never mutated again after closing.
func (tx *Tx) CloseRecord(id string, returnedAt time.Time) bool {
	r, ok := tx.s.records[id]
	if !ok || !r.IsOpen() {
		return false
	}
	t := returnedAt
	r.ReturnDate = &t
	tx.s.records[id] = r
	return true
}
