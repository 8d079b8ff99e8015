package service

import (
	"context"
	"time"

	"libris/internal/loans/repository"
	"libris/internal/loans/validator"
	"libris/internal/session"
	"libris/pkg/config"
	apperrors "libris/pkg/errors"
	"libris/pkg/model"
	"libris/pkg/sanitizer"
)

// LoanView is an open borrow record joined with its book and the derived
// overdue figures, computed against the clock at request time.
type LoanView struct {
	model.BorrowRecord

	BookTitle    string  `json:"book_title"`
	BookAuthor   string  `json:"book_author"`
	BookCategory string  `json:"book_category"`
	Overdue      bool    `json:"overdue"`
	DaysOverdue  int     `json:"days_overdue"`
	LateFee      float64 `json:"late_fee"`
}

type DashboardStats struct {
	TotalBooks      int         `json:"total_books"`
	AvailableBooks  int         `json:"available_books"`
	BorrowedBooks   int         `json:"borrowed_books"`
	OverdueBooks    int         `json:"overdue_books"`
	RecentLoans     []*LoanView `json:"recent_loans"`
	OutstandingFees float64     `json:"outstanding_fees"`
}

type LoanService interface {
	Borrow(ctx context.Context, req *model.BorrowRequest) (*LoanView, error)
	Return(ctx context.Context, recordID string) (*model.BorrowRecord, error)
	OpenLoans(ctx context.Context, query string) ([]*LoanView, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type loanService struct {
	repo      repository.RecordRepository
	validator *validator.LoanValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewLoanService(
	repo repository.RecordRepository,
	validator *validator.LoanValidator,
	cfg *config.Config,
) LoanService {
	return &loanService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *loanService) Borrow(ctx context.Context, req *model.BorrowRequest) (*LoanView, error) {
	s.sanitize(req)

	if err := s.validator.ValidateBorrow(req); err != nil {
		s.cfg.Log.Warn("Borrow validation failed",
			"book_id", req.BookID,
			"student_id", req.StudentID,
			"error", err,
		)
		return nil, apperrors.Validation("Borrow request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	var view *LoanView
	err := s.repo.ExecuteTransaction(ctx, func(tx *session.Tx) error {
		book, ok := tx.Book(req.BookID)
		if !ok {
			return apperrors.NotFoundWithID("Book", req.BookID)
		}
		if book.Status != model.BookStatusAvailable {
			return apperrors.Conflict("Book is not available for borrowing")
		}
		if _, open := tx.OpenRecordForBook(req.BookID); open {
			return apperrors.Conflict("Book already has an open loan")
		}

		now := s.now()
		record := model.BorrowRecord{
			ID:          tx.NewID(),
			BookID:      req.BookID,
			StudentName: req.StudentName,
			StudentID:   req.StudentID,
			BorrowDate:  now,
			DueDate:     now.Add(s.cfg.LoanPeriod()),
		}

		tx.PutRecord(record)
		tx.SetBookStatus(req.BookID, model.BookStatusBorrowed)

		view = s.buildView(&record, &book, now)
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to borrow book", "book_id", req.BookID, "error", err)
		return nil, apperrors.Internal("Failed to borrow book", err)
	}

	s.cfg.Log.Info("Book borrowed",
		"record_id", view.ID,
		"book_id", view.BookID,
		"student_id", view.StudentID,
		"due_date", view.DueDate,
	)

	return view, nil
}

func (s *loanService) Return(ctx context.Context, recordID string) (*model.BorrowRecord, error) {
	if recordID == "" {
		return nil, apperrors.InvalidInput("Record ID cannot be empty")
	}

	var returned model.BorrowRecord
	err := s.repo.ExecuteTransaction(ctx, func(tx *session.Tx) error {
		record, ok := tx.Record(recordID)
		if !ok {
			return apperrors.NotFoundWithID("Borrow record", recordID)
		}
		if !record.IsOpen() {
			return apperrors.Conflict("Borrow record is already closed")
		}

		returnedAt := s.now()
		tx.CloseRecord(recordID, returnedAt)
		tx.SetBookStatus(record.BookID, model.BookStatusAvailable)

		returned = record
		returned.ReturnDate = &returnedAt
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to return book", "record_id", recordID, "error", err)
		return nil, apperrors.Internal("Failed to return book", err)
	}

	s.cfg.Log.Info("Book returned",
		"record_id", returned.ID,
		"book_id", returned.BookID,
		"student_id", returned.StudentID,
	)

	return &returned, nil
}

func (s *loanService) OpenLoans(ctx context.Context, query string) ([]*LoanView, error) {
	loans, err := s.repo.FindOpen(ctx, query)
	if err != nil {
		s.cfg.Log.Error("Failed to list open loans", "query", query, "error", err)
		return nil, apperrors.Internal("Failed to retrieve open loans", err)
	}

	now := s.now()
	views := make([]*LoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, s.buildView(&loan.Record, &loan.Book, now))
	}

	s.cfg.Log.Debug("Open loans listed", "query", query, "results_count", len(views))

	return views, nil
}

func (s *loanService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	loans, err := s.repo.FindOpen(ctx, "")
	if err != nil {
		s.cfg.Log.Error("Failed to load dashboard loans", "error", err)
		return nil, apperrors.Internal("Failed to compute dashboard", err)
	}

	now := s.now()
	stats := &DashboardStats{
		TotalBooks:  s.repo.CountBooks(ctx),
		RecentLoans: make([]*LoanView, 0, s.cfg.RecentLoansLimit),
	}

	for _, loan := range loans {
		view := s.buildView(&loan.Record, &loan.Book, now)
		if view.Overdue {
			stats.OverdueBooks++
		}
		stats.OutstandingFees += view.LateFee
		if len(stats.RecentLoans) < s.cfg.RecentLoansLimit {
			stats.RecentLoans = append(stats.RecentLoans, view)
		}
	}

	stats.BorrowedBooks = len(loans)
	stats.AvailableBooks = stats.TotalBooks - stats.BorrowedBooks

	return stats, nil
}

func (s *loanService) buildView(record *model.BorrowRecord, book *model.Book, now time.Time) *LoanView {
	days := 0
	overdue := record.IsOverdue(now)
	if overdue {
		days = record.DaysOverdue(now)
	}
	return &LoanView{
		BorrowRecord: *record,
		BookTitle:    book.Title,
		BookAuthor:   book.Author,
		BookCategory: book.Category,
		Overdue:      overdue,
		DaysOverdue:  days,
		LateFee:      float64(days) * s.cfg.LateFeePerDay,
	}
}

func (s *loanService) sanitize(req *model.BorrowRequest) {
	req.BookID = sanitizer.TrimAndNormalize(req.BookID)
	req.StudentName = sanitizer.TrimAndNormalize(req.StudentName)
	req.StudentID = sanitizer.TrimAndNormalize(req.StudentID)
}
