package settlement

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
	svc *service.SettlementService
}

func NewHandler(svc *service.SettlementService) *Handler {
	return &Handler{svc: svc}
}

// TripRoutes mounts the routes scoped under /trips/{tripID}/settlements.
func (h *Handler) TripRoutes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
}

// ItemRoutes mounts the routes scoped under /settlements/{settlementID}.
func (h *Handler) ItemRoutes(r chi.Router) {
	r.Patch("/status", h.updateStatus)
	r.Delete("/", h.delete)
}

type recordSettlementRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
}

type settlementResponse struct {
	ID         string `json:"id"`
	TripID     string `json:"trip_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  int64  `json:"created_at"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settlement, err := h.svc.Record(r.Context(), service.RecordSettlementParams{
		TripID:     chi.URLParam(r, "tripID"),
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     amount,
		Note:       req.Note,
		CreatedBy:  middleware.GetUserID(r.Context()),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(settlement))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.svc.List(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		resp[i] = toResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settlement, err := h.svc.UpdateStatus(r.Context(),
		chi.URLParam(r, "settlementID"),
		models.SettlementStatus(req.Status),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(settlement))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "settlementID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:         s.ID,
		TripID:     s.TripID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     money.Format(s.Amount),
		Status:     string(s.Status),
		Note:       s.Note,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNonPositiveAmount),
		errors.Is(err, service.ErrSelfSettlement),
		errors.Is(err, service.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
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
