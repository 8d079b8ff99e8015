package service

import (
	"context"
	"errors"

	catalogerrors "libris/internal/catalog/errors"
	"libris/internal/catalog/repository"
	"libris/internal/catalog/validator"
	"libris/pkg/config"
	apperrors "libris/pkg/errors"
	"libris/pkg/model"
	"libris/pkg/sanitizer"
)

type BookService interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id string) (*model.Book, error)
	GetAll(ctx context.Context) ([]*model.Book, error)
	Update(ctx context.Context, id string, updates *model.BookUpdate) (*model.Book, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter repository.SearchFilter) ([]*model.Book, error)
}

type bookService struct {
	repo      repository.BookRepository
	validator *validator.BookValidator
	cfg       *config.Config
}

func NewBookService(
	repo repository.BookRepository,
	validator *validator.BookValidator,
	cfg *config.Config,
) BookService {
	return &bookService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *bookService) Create(ctx context.Context, book *model.Book) error {
	s.sanitize(book)

	if err := s.validator.Validate(book); err != nil {
		s.cfg.Log.Warn("Book validation failed",
			"title", book.Title,
			"author", book.Author,
			"error", err,
		)
		return apperrors.Validation("Book validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, book); err != nil {
		s.cfg.Log.Error("Failed to create book", "title", book.Title, "error", err)
		return apperrors.Internal("Failed to create book", err)
	}

	s.cfg.Log.Info("Book created",
		"id", book.ID,
		"title", book.Title,
		"author", book.Author,
		"category", book.Category,
	)

	return nil
}

func (s *bookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Book ID cannot be empty")
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Book", id)
		}
		s.cfg.Log.Error("Failed to get book by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve book", err)
	}

	return book, nil
}

func (s *bookService) GetAll(ctx context.Context) ([]*model.Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list books", "error", err)
		return nil, apperrors.Internal("Failed to retrieve books", err)
	}
	return books, nil
}

func (s *bookService) Update(ctx context.Context, id string, updates *model.BookUpdate) (*model.Book, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Book ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Book", id)
		}
		return nil, apperrors.Internal("Failed to check book existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.merge(existing, updates)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Book validation failed",
			"id", id,
			"title", merged.Title,
			"error", err,
		)
		return nil, apperrors.Validation("Book validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Book", id)
		}
		s.cfg.Log.Error("Failed to update book", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update book", err)
	}

	s.cfg.Log.Info("Book updated", "id", id, "title", merged.Title)

	return merged, nil
}

func (s *bookService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Book ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Book", id)
		}
		if errors.Is(err, catalogerrors.ErrOpenLoan) {
			return apperrors.Conflict("Book cannot be deleted while it has an open loan")
		}
		s.cfg.Log.Error("Failed to delete book", "id", id, "error", err)
		return apperrors.Internal("Failed to delete book", err)
	}

	s.cfg.Log.Info("Book deleted", "id", id)

	return nil
}

func (s *bookService) Search(ctx context.Context, filter repository.SearchFilter) ([]*model.Book, error) {
	if filter.Status != "" &&
		filter.Status != model.BookStatusAvailable &&
		filter.Status != model.BookStatusBorrowed {
		return nil, apperrors.InvalidInput("Status must be 'available' or 'borrowed'")
	}

	books, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to search books",
			"query", filter.Query,
			"category", filter.Category,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to search books", err)
	}

	s.cfg.Log.Debug("Book search completed",
		"query", filter.Query,
		"category", filter.Category,
		"results_count", len(books),
	)

	return books, nil
}

func (s *bookService) sanitize(book *model.Book) {
	book.Title = sanitizer.TrimAndNormalize(book.Title)
	book.Author = sanitizer.TrimAndNormalize(book.Author)
	book.Category = sanitizer.TrimAndNormalize(book.Category)
	book.ISBN = sanitizer.NormalizeISBN(book.ISBN)
}

func (s *bookService) sanitizeUpdate(updates *model.BookUpdate) {
	if updates.Title != "" {
		updates.Title = sanitizer.TrimAndNormalize(updates.Title)
	}
	if updates.Author != "" {
		updates.Author = sanitizer.TrimAndNormalize(updates.Author)
	}
	if updates.Category != "" {
		updates.Category = sanitizer.TrimAndNormalize(updates.Category)
	}
	if updates.ISBN != nil {
		normalized := sanitizer.NormalizeISBN(*updates.ISBN)
		updates.ISBN = &normalized
	}
}

func (s *bookService) merge(existing *model.Book, updates *model.BookUpdate) *model.Book {
	merged := *existing

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.Author != "" {
		merged.Author = updates.Author
	}
	if updates.Category != "" {
		merged.Category = updates.Category
	}
	if updates.ISBN != nil {
		merged.ISBN = *updates.ISBN
	}
	if updates.PublishedYear != nil {
		merged.PublishedYear = *updates.PublishedYear
	}

	merged.ID = existing.ID
	merged.Status = existing.Status

	return &merged
}
