package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"cagnotte/internal/http/handlers"
	"cagnotte/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Cfg.AllowedOrigins),
		middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.Register)
			r.Post("/login", app.Login)
			r.Post("/refresh", app.Refresh)
			r.Get("/countries", app.CountriesList)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(app.Cfg.JWTSecret))
				r.Post("/logout", app.Logout)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.Cfg.JWTSecret))

			r.Route("/cagnottes", func(r chi.Router) {
				r.Post("/", app.FundsCreate)
				r.Get("/", app.FundsList)
				r.Get("/{id}", app.FundsGet)
				r.Put("/{id}", app.FundsUpdate)
				r.Delete("/{id}", app.FundsDelete)
				r.Put("/{id}/close", app.FundsClose)
			})

			r.Post("/donate", app.Donate)

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", app.TransactionsMine)
				r.Get("/cagnottes/{id}", app.TransactionsByFund)
			})
		})
	})

	return r
}
