package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"libris/internal/loans/service"
	httputil "libris/pkg/http"
	"libris/pkg/logger"
	"libris/pkg/model"
)

type LoanHandler struct {
	service service.LoanService
	log     *logger.Logger
}

func NewLoanHandler(service service.LoanService, log *logger.Logger) *LoanHandler {
	return &LoanHandler{
		service: service,
		log:     log,
	}
}

func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Borrow", "error", writeErr)
		}
		return
	}

	loan, err := h.service.Borrow(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Borrow", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, loan); err != nil {
		h.log.Error("failed to write created response", "handler", "Borrow", "error", err)
	}
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	record, err := h.service.Return(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Return", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, record); err != nil {
		h.log.Error("failed to write success response", "handler", "Return", "error", err)
	}
}

func (h *LoanHandler) GetOpen(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	loans, err := h.service.OpenLoans(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetOpen", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, loans); err != nil {
		h.log.Error("failed to write success response", "handler", "GetOpen", "error", err)
	}
}

func (h *LoanHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Dashboard", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Dashboard", "error", err)
	}
}

func (h *LoanHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/loans", h.Borrow)
	router.GET("/api/v1/loans", h.GetOpen)
	router.POST("/api/v1/loans/id/:id/return", h.Return)
	router.GET("/api/v1/dashboard", h.Dashboard)
}
