package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"libris/internal/catalog/repository"
	apperrors "libris/pkg/errors"
	httputil "libris/pkg/http"
	"libris/pkg/logger"
	"libris/pkg/model"
)

type mockBookService struct {
	createFunc  func(ctx context.Context, book *model.Book) error
	getByIDFunc func(ctx context.Context, id string) (*model.Book, error)
	getAllFunc  func(ctx context.Context) ([]*model.Book, error)
	updateFunc  func(ctx context.Context, id string, updates *model.BookUpdate) (*model.Book, error)
	deleteFunc  func(ctx context.Context, id string) error
	searchFunc  func(ctx context.Context, filter repository.SearchFilter) ([]*model.Book, error)
}

func (m *mockBookService) Create(ctx context.Context, book *model.Book) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, book)
	}
	return nil
}

func (m *mockBookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Book", id)
}

func (m *mockBookService) GetAll(ctx context.Context) ([]*model.Book, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*model.Book{}, nil
}

func (m *mockBookService) Update(ctx context.Context, id string, updates *model.BookUpdate) (*model.Book, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil, apperrors.NotFoundWithID("Book", id)
}

func (m *mockBookService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookService) Search(ctx context.Context, filter repository.SearchFilter) ([]*model.Book, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filter)
	}
	return []*model.Book{}, nil
}

func newTestHandler(service *mockBookService) *BookHandler {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
	return NewBookHandler(service, log)
}

func TestCreate_Handler(t *testing.T) {
	handler := newTestHandler(&mockBookService{
		createFunc: func(ctx context.Context, book *model.Book) error {
			book.ID = "b1"
			book.Status = model.BookStatusAvailable
			return nil
		},
	})

	body := `{"title":"1984","author":"George Orwell","category":"Fiction"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data model.Book `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID != "b1" || resp.Data.Status != model.BookStatusAvailable {
		t.Errorf("unexpected payload: %+v", resp.Data)
	}
}

func TestCreate_Handler_InvalidJSON(t *testing.T) {
	handler := newTestHandler(&mockBookService{
		createFunc: func(ctx context.Context, book *model.Book) error {
			t.Error("service must not be reached on malformed JSON")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreate_Handler_ValidationError(t *testing.T) {
	handler := newTestHandler(&mockBookService{
		createFunc: func(ctx context.Context, book *model.Book) error {
			return apperrors.Validation("Book validation failed", map[string]any{"error": "Title: is required"})
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(`{"author":"x","category":"y"}`))
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}

	var resp httputil.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Book validation failed" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestGetByID_Handler_NotFound(t *testing.T) {
	handler := newTestHandler(&mockBookService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/id/missing", nil)
	w := httptest.NewRecorder()

	handler.GetByID(w, req, httprouter.Params{{Key: "id", Value: "missing"}})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDelete_Handler_Conflict(t *testing.T) {
	handler := newTestHandler(&mockBookService{
		deleteFunc: func(ctx context.Context, id string) error {
			return apperrors.Conflict("Book cannot be deleted while it has an open loan")
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/books/id/b1", nil)
	w := httptest.NewRecorder()

	handler.Delete(w, req, httprouter.Params{{Key: "id", Value: "b1"}})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestDelete_Handler_NoContent(t *testing.T) {
	handler := newTestHandler(&mockBookService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/books/id/b1", nil)
	w := httptest.NewRecorder()

	handler.Delete(w, req, httprouter.Params{{Key: "id", Value: "b1"}})

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}

func TestSearch_Handler_PassesFilter(t *testing.T) {
	var received repository.SearchFilter
	handler := newTestHandler(&mockBookService{
		searchFunc: func(ctx context.Context, filter repository.SearchFilter) ([]*model.Book, error) {
			received = filter
			return []*model.Book{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/search?q=orwell&category=Fiction&status=available", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if received.Query != "orwell" || received.Category != "Fiction" || received.Status != model.BookStatusAvailable {
		t.Errorf("filter not passed through: %+v", received)
	}
}

func TestRegisterRoutes(t *testing.T) {
	handler := newTestHandler(&mockBookService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Book, error) {
			return &model.Book{ID: id, Title: "1984"}, nil
		},
	})

	router := httprouter.New()
	handler.RegisterRoutes(router)

	// The static search route must not be shadowed by the id route.
	for _, path := range []string{"/api/v1/books", "/api/v1/books/search", "/api/v1/books/id/b1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}
