package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cagnotte/internal/countries"
	"cagnotte/internal/domain"
	"cagnotte/internal/infra"
	"cagnotte/internal/middleware"
)

func newTestApp() *App {
	return &App{
		Cfg: &infra.Config{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			TaxRate:         decimal.RequireFromString("0.01"),
			MinimumDonation: decimal.NewFromInt(5),
			InitialBalance:  decimal.NewFromInt(1000),
		},
		Logger:    zerolog.Nop(),
		Countries: countries.NewTable(),
	}
}

// authedRequest builds a request carrying an authenticated user id, the way
// the AuthJWT middleware would.
func authedRequest(method, target, body string, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, newBodyReader(body))
	}
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

func newBodyReader(body string) io.Reader {
	return strings.NewReader(body)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type fakeUserRepo struct {
	users     map[string]*domain.User // keyed by phone number
	createErr error
	created   []*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.users == nil {
		f.users = make(map[string]*domain.User)
	}
	if _, exists := f.users[user.PhoneNumber]; exists {
		return domain.ErrPhoneTaken
	}
	f.users[user.PhoneNumber] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phoneNumber string) (*domain.User, error) {
	if u, ok := f.users[phoneNumber]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeFundRepo struct {
	funds     map[string]*domain.Fund
	closeErr  error
	updateErr error
}

func (f *fakeFundRepo) Create(_ context.Context, fund *domain.Fund) error {
	if f.funds == nil {
		f.funds = make(map[string]*domain.Fund)
	}
	now := time.Now().UTC()
	fund.CreatedAt = now
	fund.UpdatedAt = now
	f.funds[fund.ID] = fund
	return nil
}

func (f *fakeFundRepo) GetByID(_ context.Context, id string) (*domain.Fund, error) {
	if fund, ok := f.funds[id]; ok {
		copied := *fund
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFundRepo) List(_ context.Context, filter domain.FundFilter) ([]domain.Fund, error) {
	var items []domain.Fund
	for _, fund := range f.funds {
		if filter.Status != "" && fund.Status != filter.Status {
			continue
		}
		items = append(items, *fund)
	}
	return items, nil
}

func (f *fakeFundRepo) Update(_ context.Context, fund *domain.Fund) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.funds[fund.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *fund
	f.funds[fund.ID] = &copied
	return nil
}

func (f *fakeFundRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.funds[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.funds, id)
	return nil
}

func (f *fakeFundRepo) Close(_ context.Context, id string) (*domain.Fund, error) {
	if f.closeErr != nil {
		return nil, f.closeErr
	}
	fund, ok := f.funds[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if fund.Status != domain.FundStatusOpen {
		return nil, domain.ErrConflict
	}
	fund.Status = domain.FundStatusClosed
	copied := *fund
	return &copied, nil
}

type fakeTransactionRepo struct {
	byUser map[string][]domain.Transaction
	byFund map[string][]domain.Transaction
	err    error
}

func (f *fakeTransactionRepo) ListByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeTransactionRepo) ListByFund(_ context.Context, fundID string) ([]domain.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byFund[fundID], nil
}

type fakeSettler struct {
	record *domain.Transaction
	err    error

	gotDonorID string
	gotFundID  string
	gotAmount  decimal.Decimal
	gotNote    string
}

func (f *fakeSettler) Settle(_ context.Context, donorID, fundID string, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	f.gotDonorID = donorID
	f.gotFundID = fundID
	f.gotAmount = amount
	f.gotNote = note
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

type fakeTokenRepo struct {
	revoked map[string]time.Time
	err     error
}

func (f *fakeTokenRepo) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = make(map[string]time.Time)
	}
	f.revoked[jti] = expiresAt
	return nil
}

func (f *fakeTokenRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[jti]
	return ok, nil
}
