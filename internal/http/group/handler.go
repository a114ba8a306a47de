package group

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtilda/chipin/internal/middleware"
	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/service"
	"github.com/mtilda/chipin/internal/storage"
)

type Handler struct {
	svc *service.GroupService
}

func NewHandler(svc *service.GroupService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{groupID}", h.get)
	r.Post("/{groupID}/members", h.addMembers)
	r.Post("/{groupID}/trips", h.createTrip)
	r.Get("/{groupID}/trips", h.listTrips)
}

type createGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
}

type tripResponse struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	group, err := h.svc.CreateGroup(r.Context(), req.Name, middleware.GetUserID(r.Context()), req.MemberIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	group, err := h.svc.GetGroup(r.Context(), chi.URLParam(r, "groupID"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

type addMembersRequest struct {
	UserIDs []string `json:"user_ids"`
}

func (h *Handler) addMembers(w http.ResponseWriter, r *http.Request) {
	var req addMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.UserIDs) == 0 {
		http.Error(w, "user_ids required", http.StatusBadRequest)
		return
	}

	if err := h.svc.AddMembers(r.Context(), chi.URLParam(r, "groupID"), req.UserIDs); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createTripRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	trip, err := h.svc.CreateTrip(r.Context(), chi.URLParam(r, "groupID"), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTripResponse(trip))
}

func (h *Handler) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.ListTrips(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]tripResponse, len(trips))
	for i, t := range trips {
		resp[i] = toTripResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		MemberIDs: g.MemberIDs,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}
}

func toTripResponse(t *models.Trip) tripResponse {
	return tripResponse{
		ID:        t.ID,
		GroupID:   t.GroupID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrUnknownUser):
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
