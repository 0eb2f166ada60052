package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"cagnotte/internal/domain"
)

const deadlineLayout = "2006-01-02"

type fundRequest struct {
	Name             string          `json:"name"`
	PhoneBeneficiary string          `json:"phone_beneficiary"`
	TargetAmount     decimal.Decimal `json:"target_amount"`
	Description      string          `json:"description"`
	Deadline         string          `json:"deadline"`
}

type fundResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Owner             string          `json:"owner"`
	PhoneBeneficiary  string          `json:"phone_beneficiary"`
	TargetAmount      decimal.Decimal `json:"target_amount"`
	CurrentAmount     decimal.Decimal `json:"current_amount"`
	TotalParticipants int             `json:"total_participants"`
	Description       string          `json:"description"`
	Deadline          string          `json:"deadline"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func toFundResponse(f *domain.Fund) fundResponse {
	return fundResponse{
		ID:                f.ID,
		Name:              f.Name,
		Owner:             f.OwnerID,
		PhoneBeneficiary:  f.PhoneBeneficiary,
		TargetAmount:      f.TargetAmount,
		CurrentAmount:     f.CurrentAmount,
		TotalParticipants: f.TotalParticipants,
		Description:       f.Description,
		Deadline:          f.Deadline.Format(deadlineLayout),
		Status:            string(f.Status),
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

// validateFundRequest checks the owner-editable fields shared by create and
// update. The deadline must be strictly in the future (date granularity).
func (a *App) validateFundRequest(req fundRequest) (time.Time, string) {
	if req.Name == "" {
		return time.Time{}, "name is required"
	}
	if !req.TargetAmount.IsPositive() {
		return time.Time{}, "target_amount must be positive"
	}
	deadline, err := time.Parse(deadlineLayout, req.Deadline)
	if err != nil {
		return time.Time{}, "deadline must be formatted as YYYY-MM-DD"
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !deadline.After(today) {
		return time.Time{}, "Deadline must be in the future."
	}
	return deadline, ""
}

func (a *App) FundsCreate(w http.ResponseWriter, r *http.Request) {
	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	deadline, msg := a.validateFundRequest(req)
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}

	fund := &domain.Fund{
		ID:               domain.NewID(),
		Name:             req.Name,
		OwnerID:          a.currentUserID(r),
		PhoneBeneficiary: req.PhoneBeneficiary,
		TargetAmount:     req.TargetAmount,
		CurrentAmount:    decimal.Zero,
		Description:      req.Description,
		Deadline:         deadline,
		Status:           domain.FundStatusOpen,
	}
	if err := a.Funds.Create(r.Context(), fund); err != nil {
		a.Logger.Error().Err(err).Msg("create fund failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create cagnotte")
		return
	}

	a.json(w, http.StatusCreated, toFundResponse(fund))
}

func (a *App) FundsList(w http.ResponseWriter, r *http.Request) {
	filter := domain.FundFilter{}
	switch status := r.URL.Query().Get("status"); status {
	case "":
	case string(domain.FundStatusOpen), string(domain.FundStatusClosed):
		filter.Status = domain.FundStatus(status)
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "status must be open or closed")
		return
	}

	funds, err := a.Funds.List(r.Context(), filter)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list funds failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list cagnottes")
		return
	}

	items := make([]fundResponse, 0, len(funds))
	for i := range funds {
		items = append(items, toFundResponse(&funds[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) FundsGet(w http.ResponseWriter, r *http.Request) {
	fund, err := a.Funds.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "cagnotte not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load fund failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load cagnotte")
		return
	}
	a.json(w, http.StatusOK, toFundResponse(fund))
}

// loadOwnedFund fetches a fund and enforces that the caller owns it.
func (a *App) loadOwnedFund(w http.ResponseWriter, r *http.Request, action string) *domain.Fund {
	fund, err := a.Funds.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "cagnotte not found")
			return nil
		}
		a.Logger.Error().Err(err).Msg("load fund failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load cagnotte")
		return nil
	}
	if fund.OwnerID != a.currentUserID(r) {
		a.error(w, http.StatusForbidden, "forbidden", "Only the owner can "+action+" this cagnotte.")
		return nil
	}
	return fund
}

func (a *App) FundsUpdate(w http.ResponseWriter, r *http.Request) {
	fund := a.loadOwnedFund(w, r, "update")
	if fund == nil {
		return
	}
	if fund.HasDonations() {
		a.error(w, http.StatusConflict, "conflict", "Cannot update a cagnotte that has donations.")
		return
	}

	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	deadline, msg := a.validateFundRequest(req)
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}

	fund.Name = req.Name
	fund.PhoneBeneficiary = req.PhoneBeneficiary
	fund.TargetAmount = req.TargetAmount
	fund.Description = req.Description
	fund.Deadline = deadline
	if err := a.Funds.Update(r.Context(), fund); err != nil {
		a.Logger.Error().Err(err).Msg("update fund failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update cagnotte")
		return
	}

	a.json(w, http.StatusOK, toFundResponse(fund))
}

func (a *App) FundsDelete(w http.ResponseWriter, r *http.Request) {
	fund := a.loadOwnedFund(w, r, "delete")
	if fund == nil {
		return
	}
	if fund.HasDonations() {
		a.error(w, http.StatusConflict, "conflict", "Cannot delete a cagnotte that has donations.")
		return
	}

	if err := a.Funds.Delete(r.Context(), fund.ID); err != nil {
		a.Logger.Error().Err(err).Msg("delete fund failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete cagnotte")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) FundsClose(w http.ResponseWriter, r *http.Request) {
	fund := a.loadOwnedFund(w, r, "close")
	if fund == nil {
		return
	}

	closed, err := a.Funds.Close(r.Context(), fund.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			a.error(w, http.StatusConflict, "conflict", "Fund is already closed.")
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "cagnotte not found")
		default:
			a.Logger.Error().Err(err).Msg("close fund failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to close cagnotte")
		}
		return
	}

	a.json(w, http.StatusOK, toFundResponse(closed))
}
