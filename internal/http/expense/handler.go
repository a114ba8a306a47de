package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtilda/chipin/internal/middleware"
	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/money"
	"github.com/mtilda/chipin/internal/service"
	"github.com/mtilda/chipin/internal/storage"
)

type Handler struct {
	svc *service.ExpenseService
}

func NewHandler(svc *service.ExpenseService) *Handler {
	return &Handler{svc: svc}
}

// TripRoutes mounts the routes scoped under /trips/{tripID}/expenses.
func (h *Handler) TripRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

// Amounts cross the wire as decimal strings ("45.00"); splits carry their
// per-member share the same way. split_among asks for an equal split
// instead of explicit shares.
type createExpenseRequest struct {
	PayerID     string         `json:"payer_id"`
	Amount      string         `json:"amount"`
	Description string         `json:"description"`
	Splits      []splitRequest `json:"splits,omitempty"`
	SplitAmong  []string       `json:"split_among,omitempty"`
}

type splitRequest struct {
	UserID string `json:"user_id"`
	Amount string `json:"amount"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	TripID      string          `json:"trip_id"`
	PayerID     string          `json:"payer_id"`
	Amount      string          `json:"amount"`
	Description string          `json:"description"`
	Splits      []splitResponse `json:"splits"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   int64           `json:"created_at"`
}

type splitResponse struct {
	UserID string `json:"user_id"`
	Amount string `json:"amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	splits := make([]models.Split, len(req.Splits))
	for i, s := range req.Splits {
		share, err := money.Parse(s.Amount)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		splits[i] = models.Split{UserID: s.UserID, Amount: share}
	}

	expense, err := h.svc.Create(r.Context(), service.CreateExpenseParams{
		TripID:      chi.URLParam(r, "tripID"),
		PayerID:     req.PayerID,
		Amount:      amount,
		Description: req.Description,
		CreatedBy:   middleware.GetUserID(r.Context()),
		Splits:      splits,
		SplitAmong:  req.SplitAmong,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(expense))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /expenses/{expenseID} (soft delete).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "expenseID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(e *models.Expense) expenseResponse {
	splits := make([]splitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = splitResponse{UserID: s.UserID, Amount: money.Format(s.Amount)}
	}
	return expenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		PayerID:     e.PayerID,
		Amount:      money.Format(e.Amount),
		Description: e.Description,
		Splits:      splits,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNonPositiveAmount),
		errors.Is(err, service.ErrSplitMismatch),
		errors.Is(err, service.ErrNoSplits),
		errors.Is(err, service.ErrDuplicateSplit):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotGroupMember):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
