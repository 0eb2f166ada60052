package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cagnotte/internal/domain"
)

type donateRequest struct {
	FundID string          `json:"fund_id"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

type transactionResponse struct {
	ID        string          `json:"id"`
	User      string          `json:"user"`
	Cagnotte  string          `json:"cagnotte"`
	Amount    decimal.Decimal `json:"amount"`
	Tax       decimal.Decimal `json:"tax"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

func toTransactionResponse(tr *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tr.ID,
		User:      tr.UserID,
		Cagnotte:  tr.FundID,
		Amount:    tr.Amount,
		Tax:       tr.Tax,
		Note:      tr.Note,
		CreatedAt: tr.CreatedAt,
	}
}

// Donate settles a donation from the authenticated caller into a fund and
// returns the created transaction.
func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.FundID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "fund_id is required")
		return
	}
	if !req.Amount.IsPositive() {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	record, err := a.Settler.Settle(r.Context(), a.currentUserID(r), req.FundID, req.Amount, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrFundClosed):
			a.error(w, http.StatusNotFound, "not_found", "cagnotte not found or not open")
		case errors.Is(err, domain.ErrBelowMinimum):
			a.error(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("Minimum donation is %s", a.Cfg.MinimumDonation))
		case errors.Is(err, domain.ErrInsufficientFunds):
			a.error(w, http.StatusBadRequest, "bad_request", "Insufficient balance for this donation.")
		case errors.Is(err, domain.ErrConflict):
			a.error(w, http.StatusConflict, "conflict", "Concurrent donation in progress, please retry.")
		default:
			a.Logger.Error().Err(err).Msg("settlement failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to process donation")
		}
		return
	}

	a.json(w, http.StatusCreated, toTransactionResponse(record))
}
