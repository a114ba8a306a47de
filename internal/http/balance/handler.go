package balance

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/mtilda/chipin/internal/ledger"
	"github.com/mtilda/chipin/internal/money"
	"github.com/mtilda/chipin/internal/service"
	"github.com/mtilda/chipin/internal/storage"
)

type Handler struct {
	svc *service.LedgerService
}

func NewHandler(svc *service.LedgerService) *Handler {
	return &Handler{svc: svc}
}

type balanceEntry struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
}

type transferEntry struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type tripBalancesResponse struct {
	Balances  []balanceEntry  `json:"balances"`
	Transfers []transferEntry `json:"transfers"`
}

type memberEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Balance     string `json:"balance"`
}

type groupBalancesResponse struct {
	Balances   []balanceEntry  `json:"balances"`
	Transfers  []transferEntry `json:"transfers"`
	TotalSpent string          `json:"total_spent"`
	Members    []memberEntry   `json:"members"`
}

// TripBalances handles GET /trips/{tripID}/balances.
func (h *Handler) TripBalances(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.svc.TripBalances(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripBalancesResponse{
		Balances:  toBalanceEntries(sheet.Balances),
		Transfers: toTransferEntries(sheet.Transfers),
	})
}

// GroupBalances handles GET /groups/{groupID}/balances.
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.svc.GroupBalances(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	members := make([]memberEntry, len(sheet.Members))
	for i, m := range sheet.Members {
		members[i] = memberEntry{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			Balance:     money.Format(m.Balance),
		}
	}

	writeJSON(w, http.StatusOK, groupBalancesResponse{
		Balances:   toBalanceEntries(sheet.Balances),
		Transfers:  toTransferEntries(sheet.Transfers),
		TotalSpent: money.Format(sheet.TotalSpent),
		Members:    members,
	})
}

// toBalanceEntries renders the balance map as a sorted list so the JSON
// output is stable.
func toBalanceEntries(balances ledger.Balances) []balanceEntry {
	entries := make([]balanceEntry, 0, len(balances))
	for id, bal := range balances {
		entries = append(entries, balanceEntry{UserID: id, Balance: money.Format(bal)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
	return entries
}

func toTransferEntries(transfers []ledger.Transfer) []transferEntry {
	entries := make([]transferEntry, len(transfers))
	for i, t := range transfers {
		entries[i] = transferEntry{From: t.From, To: t.To, Amount: money.Format(t.Amount)}
	}
	return entries
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrOverflow):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
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
