package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/cluegame-go/internal/api/response"
	"github.com/mcoot/cluegame-go/internal/model"
	"github.com/mcoot/cluegame-go/internal/storage"
)

// DefaultHistoryLimit caps the history listing when no limit is requested
const DefaultHistoryLimit = 20

// HistoryHandler serves the record of finished games
type HistoryHandler struct {
	storage storage.Storage
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(storage storage.Storage) *HistoryHandler {
	return &HistoryHandler{storage: storage}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	summaries, err := h.storage.ListGameSummaries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.HistoryFromModel(summaries))
}

// Get handles GET /api/v1/history/{id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	summary, err := h.storage.GetGameSummary(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameSummaryFromModel(*summary))
}
