package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"cagnotte/internal/countries"
	"cagnotte/internal/domain"
	"cagnotte/internal/infra"
	"cagnotte/internal/middleware"
)

// App is the handler container. Dependencies are injected in cmd/api and
// faked in tests through the domain interfaces.
type App struct {
	Cfg       *infra.Config
	Logger    zerolog.Logger
	Countries *countries.Table
	GeoLookup middleware.CountryLookup

	Users        domain.UserRepository
	Funds        domain.FundRepository
	Transactions domain.TransactionRepository
	Settler      domain.Settler
	Tokens       domain.TokenRepository
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
