package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cagnotte/internal/domain"
)

// TransactionsMine lists the authenticated caller's donations, newest first.
func (a *App) TransactionsMine(w http.ResponseWriter, r *http.Request) {
	items, err := a.Transactions.ListByUser(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list user transactions failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list transactions")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toTransactionResponses(items)})
}

// TransactionsByFund lists the donations credited to one cagnotte.
func (a *App) TransactionsByFund(w http.ResponseWriter, r *http.Request) {
	items, err := a.Transactions.ListByFund(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list fund transactions failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list transactions")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toTransactionResponses(items)})
}

func toTransactionResponses(items []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(items))
	for i := range items {
		out = append(out, toTransactionResponse(&items[i]))
	}
	return out
}
