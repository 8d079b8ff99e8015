package health

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"libris/internal/session"
	httputil "libris/pkg/http"
	"libris/pkg/logger"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Books   int    `json:"books,omitempty"`
	Records int    `json:"records,omitempty"`
}

// Handler serves liveness and readiness. With all state in process memory
// there is no backing dependency to probe; readiness additionally reports
// collection sizes as a cheap sanity signal.
type Handler struct {
	store *session.Store
	log   *logger.Logger
}

func NewHandler(store *session.Store, log *logger.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "error", err)
	}
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var books, records int
	h.store.View(func(tx *session.ReadTx) {
		books = tx.CountBooks()
		records = tx.CountRecords()
	})

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ready",
		Books:   books,
		Records: records,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
