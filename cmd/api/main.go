package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"cagnotte/internal/adapter/repo"
	"cagnotte/internal/countries"
	"cagnotte/internal/domain"
	"cagnotte/internal/http/handlers"
	"cagnotte/internal/http/httpapi"
	"cagnotte/internal/infra"
	"cagnotte/internal/infra/geoip"
	"cagnotte/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Decimal JSON as plain numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	// Country reference table, built once and shared read-only.
	countryTable := countries.NewTable()
	logger.Info().Int("countries", countryTable.Len()).Msg("country table loaded")

	// GeoIP is optional; without a database the suggestion hint is skipped.
	var geoLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		geoLookup = resolver.CountryCode
	}

	terms := domain.SettlementTerms{
		TaxRate:         cfg.TaxRate,
		MinimumDonation: cfg.MinimumDonation,
	}

	app := &handlers.App{
		Cfg:          cfg,
		Logger:       logger,
		Countries:    countryTable,
		GeoLookup:    geoLookup,
		Users:        repo.NewUserRepository(dbpool),
		Funds:        repo.NewFundRepository(dbpool),
		Transactions: repo.NewTransactionRepository(dbpool),
		Settler:      repo.NewSettlementRepository(dbpool, terms, cfg.SettleLockTimeout),
		Tokens:       repo.NewTokenRepository(dbpool),
	}

	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
