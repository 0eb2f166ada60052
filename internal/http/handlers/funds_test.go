package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cagnotte/internal/domain"
)

func futureDeadline() string {
	return time.Now().UTC().AddDate(0, 1, 0).Format(deadlineLayout)
}

func seedFund(repo *fakeFundRepo, fund *domain.Fund) {
	if repo.funds == nil {
		repo.funds = make(map[string]*domain.Fund)
	}
	repo.funds[fund.ID] = fund
}

func baseFund(owner string) *domain.Fund {
	return &domain.Fund{
		ID:            "fund-1",
		Name:          "Mariage de Fatou",
		OwnerID:       owner,
		TargetAmount:  decimal.NewFromInt(500),
		CurrentAmount: decimal.Zero,
		Description:   "aidez nous",
		Deadline:      time.Now().UTC().AddDate(0, 2, 0),
		Status:        domain.FundStatusOpen,
	}
}

func TestFundsCreate(t *testing.T) {
	funds := &fakeFundRepo{}
	app := newTestApp()
	app.Funds = funds

	body := `{"name":"Mariage de Fatou","phone_beneficiary":"+22222345678","target_amount":500,"description":"aidez nous","deadline":"` + futureDeadline() + `"}`
	req := authedRequest(http.MethodPost, "/api/cagnottes", body, "owner-1")
	rr := httptest.NewRecorder()
	app.FundsCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body)
	}

	var got fundResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Owner != "owner-1" {
		t.Fatalf("owner = %q, want owner-1", got.Owner)
	}
	if got.Status != string(domain.FundStatusOpen) {
		t.Fatalf("status = %q, want open", got.Status)
	}
	if !got.CurrentAmount.IsZero() || got.TotalParticipants != 0 {
		t.Fatalf("new fund must start empty, got %+v", got)
	}
	if len(got.ID) != 10 {
		t.Fatalf("id length = %d, want 10", len(got.ID))
	}
}

func TestFundsCreateValidation(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(deadlineLayout)
	today := time.Now().UTC().Format(deadlineLayout)

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "deadline in the past",
			body:        `{"name":"x","target_amount":500,"deadline":"` + yesterday + `"}`,
			wantMessage: "Deadline must be in the future.",
		},
		{
			name:        "deadline today",
			body:        `{"name":"x","target_amount":500,"deadline":"` + today + `"}`,
			wantMessage: "Deadline must be in the future.",
		},
		{
			name:        "malformed deadline",
			body:        `{"name":"x","target_amount":500,"deadline":"soon"}`,
			wantMessage: "deadline must be formatted as YYYY-MM-DD",
		},
		{
			name:        "zero target",
			body:        `{"name":"x","target_amount":0,"deadline":"` + futureDeadline() + `"}`,
			wantMessage: "target_amount must be positive",
		},
		{
			name:        "missing name",
			body:        `{"target_amount":500,"deadline":"` + futureDeadline() + `"}`,
			wantMessage: "name is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()
			app.Funds = &fakeFundRepo{}

			req := authedRequest(http.MethodPost, "/api/cagnottes", tc.body, "owner-1")
			rr := httptest.NewRecorder()
			app.FundsCreate(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var payload struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload.Error.Message != tc.wantMessage {
				t.Fatalf("message = %q, want %q", payload.Error.Message, tc.wantMessage)
			}
		})
	}
}

func TestFundsListStatusFilter(t *testing.T) {
	funds := &fakeFundRepo{}
	open := baseFund("owner-1")
	closed := baseFund("owner-1")
	closed.ID = "fund-2"
	closed.Status = domain.FundStatusClosed
	seedFund(funds, open)
	seedFund(funds, closed)

	app := newTestApp()
	app.Funds = funds

	req := authedRequest(http.MethodGet, "/api/cagnottes?status=open", "", "owner-1")
	rr := httptest.NewRecorder()
	app.FundsList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload struct {
		Items []fundResponse `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].ID != "fund-1" {
		t.Fatalf("unexpected items: %+v", payload.Items)
	}
}

func TestFundsListRejectsUnknownStatus(t *testing.T) {
	app := newTestApp()
	app.Funds = &fakeFundRepo{}

	req := authedRequest(http.MethodGet, "/api/cagnottes?status=paused", "", "owner-1")
	rr := httptest.NewRecorder()
	app.FundsList(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestFundsGet(t *testing.T) {
	funds := &fakeFundRepo{}
	seedFund(funds, baseFund("owner-1"))
	app := newTestApp()
	app.Funds = funds

	req := withURLParam(authedRequest(http.MethodGet, "/api/cagnottes/fund-1", "", "owner-1"), "id", "fund-1")
	rr := httptest.NewRecorder()
	app.FundsGet(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	req = withURLParam(authedRequest(http.MethodGet, "/api/cagnottes/missing", "", "owner-1"), "id", "missing")
	rr = httptest.NewRecorder()
	app.FundsGet(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestFundsUpdateGuards(t *testing.T) {
	validBody := `{"name":"renamed","target_amount":800,"deadline":"` + futureDeadline() + `"}`

	t.Run("non owner forbidden", func(t *testing.T) {
		funds := &fakeFundRepo{}
		seedFund(funds, baseFund("owner-1"))
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodPut, "/api/cagnottes/fund-1", validBody, "intruder"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsUpdate(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rr.Code)
		}
	})

	t.Run("fund with donations conflicts", func(t *testing.T) {
		funds := &fakeFundRepo{}
		funded := baseFund("owner-1")
		funded.CurrentAmount = decimal.NewFromInt(50)
		funded.TotalParticipants = 1
		seedFund(funds, funded)
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodPut, "/api/cagnottes/fund-1", validBody, "owner-1"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsUpdate(rr, req)

		if rr.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rr.Code)
		}
	})

	t.Run("owner updates pristine fund", func(t *testing.T) {
		funds := &fakeFundRepo{}
		seedFund(funds, baseFund("owner-1"))
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodPut, "/api/cagnottes/fund-1", validBody, "owner-1"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsUpdate(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body)
		}
		var got fundResponse
		if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.Name != "renamed" {
			t.Fatalf("name = %q, want renamed", got.Name)
		}
		if !got.TargetAmount.Equal(decimal.NewFromInt(800)) {
			t.Fatalf("target = %s, want 800", got.TargetAmount)
		}
	})
}

func TestFundsDeleteGuards(t *testing.T) {
	t.Run("fund with donations conflicts", func(t *testing.T) {
		funds := &fakeFundRepo{}
		funded := baseFund("owner-1")
		funded.TotalParticipants = 2
		funded.CurrentAmount = decimal.NewFromInt(120)
		seedFund(funds, funded)
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodDelete, "/api/cagnottes/fund-1", "", "owner-1"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsDelete(rr, req)

		if rr.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rr.Code)
		}
		if _, ok := funds.funds["fund-1"]; !ok {
			t.Fatal("fund must not be deleted")
		}
	})

	t.Run("owner deletes pristine fund", func(t *testing.T) {
		funds := &fakeFundRepo{}
		seedFund(funds, baseFund("owner-1"))
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodDelete, "/api/cagnottes/fund-1", "", "owner-1"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsDelete(rr, req)

		if rr.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rr.Code)
		}
		if _, ok := funds.funds["fund-1"]; ok {
			t.Fatal("fund should be deleted")
		}
	})
}

func TestFundsClose(t *testing.T) {
	t.Run("owner closes open fund", func(t *testing.T) {
		funds := &fakeFundRepo{}
		seedFund(funds, baseFund("owner-1"))
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodPut, "/api/cagnottes/fund-1/close", "", "owner-1"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsClose(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body)
		}
		var got fundResponse
		if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.Status != string(domain.FundStatusClosed) {
			t.Fatalf("status = %q, want closed", got.Status)
		}
	})

	t.Run("already closed conflicts", func(t *testing.T) {
		funds := &fakeFundRepo{}
		closed := baseFund("owner-1")
		closed.Status = domain.FundStatusClosed
		seedFund(funds, closed)
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodPut, "/api/cagnottes/fund-1/close", "", "owner-1"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsClose(rr, req)

		if rr.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rr.Code)
		}
	})

	t.Run("non owner forbidden", func(t *testing.T) {
		funds := &fakeFundRepo{}
		seedFund(funds, baseFund("owner-1"))
		app := newTestApp()
		app.Funds = funds

		req := withURLParam(authedRequest(http.MethodPut, "/api/cagnottes/fund-1/close", "", "intruder"), "id", "fund-1")
		rr := httptest.NewRecorder()
		app.FundsClose(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rr.Code)
		}
	})
}
