// Command topup credits a user's balance from the command line. It exists
// for operators seeding accounts; the API itself never credits balances.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"cagnotte/internal/infra"
	"cagnotte/internal/sqlinline"
)

func main() {
	var (
		idFlag     string
		phoneFlag  string
		amountFlag string
	)

	flag.StringVar(&idFlag, "id", "", "user id to credit")
	flag.StringVar(&phoneFlag, "phone", "", "user phone number (E.164) to credit")
	flag.StringVar(&amountFlag, "amount", "", "amount to credit, e.g. 250.00")
	flag.Parse()

	_ = godotenv.Load()

	userID := strings.TrimSpace(idFlag)
	phone := strings.TrimSpace(phoneFlag)
	if userID == "" && phone == "" {
		exitWithError(errors.New("either -id or -phone must be provided"))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(amountFlag))
	if err != nil || !amount.IsPositive() {
		exitWithError(errors.New("-amount must be a positive decimal"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("invalid DATABASE_URL: %w", err))
	}
	poolCfg.AfterConnect = infra.RegisterDecimalCodec

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "topup").Logger()

	var (
		query string
		arg   string
	)
	if userID != "" {
		query = sqlinline.QCreditUserByID
		arg = userID
	} else {
		query = sqlinline.QCreditUserByPhone
		arg = phone
	}

	var (
		gotID    string
		gotPhone string
		balance  decimal.Decimal
	)
	err = pool.QueryRow(ctx, query, amount, arg).Scan(&gotID, &gotPhone, &balance)
	if errors.Is(err, pgx.ErrNoRows) {
		exitWithError(errors.New("user not found"))
	}
	if err != nil {
		exitWithError(fmt.Errorf("failed to credit balance: %w", err))
	}

	logger.Info().
		Str("user_id", gotID).
		Str("phone", gotPhone).
		Str("credited", amount.String()).
		Str("balance", balance.String()).
		Msg("balance credited")
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "topup:", err)
	os.Exit(1)
}
