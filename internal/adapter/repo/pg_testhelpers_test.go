package repo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cagnotte/internal/domain"
	"cagnotte/internal/infra"
)

// Schema installed into a throwaway search_path for database-backed tests.
// Mirrors cmd/migrate/migrations/00001_init.sql.
var testDDL = []string{
	`CREATE TABLE users (
		id varchar(10) PRIMARY KEY,
		phone_number varchar(20) NOT NULL UNIQUE,
		name text NOT NULL DEFAULT '',
		country char(2) NOT NULL,
		password_hash text NOT NULL,
		solde numeric(10,2) NOT NULL DEFAULT 0 CHECK (solde >= 0),
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE funds (
		id varchar(10) PRIMARY KEY,
		name varchar(50) NOT NULL,
		owner_id varchar(10) NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		phone_beneficiary varchar(20) NOT NULL DEFAULT '',
		target_amount numeric(10,2) NOT NULL CHECK (target_amount > 0),
		current_amount numeric(10,2) NOT NULL DEFAULT 0 CHECK (current_amount >= 0),
		total_participants integer NOT NULL DEFAULT 0 CHECK (total_participants >= 0),
		description text NOT NULL DEFAULT '',
		deadline date NOT NULL,
		status varchar(10) NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE transactions (
		id varchar(10) PRIMARY KEY,
		user_id varchar(10) NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		fund_id varchar(10) NOT NULL REFERENCES funds (id) ON DELETE CASCADE,
		amount numeric(10,2) NOT NULL CHECK (amount > 0),
		tax numeric(10,2) NOT NULL DEFAULT 0 CHECK (tax >= 0),
		note text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
}

// testPool connects to the database named by TEST_DATABASE_URL and installs
// the schema under a throwaway search_path, dropped when the test finishes.
// Tests that call it skip when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	ctx := context.Background()
	schema := fmt.Sprintf("cagnotte_test_%d", time.Now().UnixNano())

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse TEST_DATABASE_URL: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	cfg.AfterConnect = infra.RegisterDecimalCodec

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP SCHEMA IF EXISTS "+schema+" CASCADE")
		pool.Close()
	})

	if _, err := pool.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("create test schema: %v", err)
	}
	for _, ddl := range testDDL {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			t.Fatalf("create test tables: %v", err)
		}
	}
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, phone, balance string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           domain.NewID(),
		PhoneNumber:  phone,
		Name:         "Test User",
		Country:      "SN",
		PasswordHash: "x",
		Balance:      decimal.RequireFromString(balance),
		IsActive:     true,
	}
	if err := NewUserRepository(pool).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedFund(t *testing.T, pool *pgxpool.Pool, ownerID, target string) *domain.Fund {
	t.Helper()
	fund := &domain.Fund{
		ID:            domain.NewID(),
		Name:          "Test Cagnotte",
		OwnerID:       ownerID,
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: decimal.Zero,
		Deadline:      time.Now().UTC().AddDate(0, 1, 0),
		Status:        domain.FundStatusOpen,
	}
	if err := NewFundRepository(pool).Create(context.Background(), fund); err != nil {
		t.Fatalf("seed fund: %v", err)
	}
	return fund
}

func userBalance(t *testing.T, pool *pgxpool.Pool, id string) decimal.Decimal {
	t.Helper()
	user, err := NewUserRepository(pool).GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load user %s: %v", id, err)
	}
	return user.Balance
}
