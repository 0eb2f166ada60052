package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cagnotte/internal/domain"
	"cagnotte/internal/sqlinline"
)

// PostgreSQL error codes that signal lock contention between concurrent
// settlements.
const (
	pgLockNotAvailable     = "55P03"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// SettlementRepositoryPG applies donation settlements as a single database
// transaction. The donor row and the fund row are both locked with
// SELECT ... FOR UPDATE (donor first, then fund, so concurrent settlements
// acquire locks in a consistent order), the arithmetic runs on the locked
// snapshot, and the balance update, fund update and transaction insert
// commit together or not at all.
type SettlementRepositoryPG struct {
	pool        *pgxpool.Pool
	terms       domain.SettlementTerms
	lockTimeout time.Duration
	now         func() time.Time
}

// NewSettlementRepository creates a new SettlementRepositoryPG.
func NewSettlementRepository(pool *pgxpool.Pool, terms domain.SettlementTerms, lockTimeout time.Duration) *SettlementRepositoryPG {
	return &SettlementRepositoryPG{
		pool:        pool,
		terms:       terms,
		lockTimeout: lockTimeout,
		now:         time.Now,
	}
}

// Settle implements domain.Settler.
func (r *SettlementRepositoryPG) Settle(ctx context.Context, donorID, fundID string, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	if r.lockTimeout > 0 {
		// lock_timeout does not accept bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("set lock timeout: %w", err)
		}
	}

	donor, err := lockUser(ctx, tx, donorID)
	if err != nil {
		return nil, err
	}
	fund, err := lockFund(ctx, tx, fundID)
	if err != nil {
		return nil, err
	}

	record, err := r.terms.Settle(donor, fund, amount, note, r.now().UTC())
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, sqlinline.QDebitUser, donor.Balance, donor.ID); err != nil {
		return nil, fmt.Errorf("debit donor: %w", mapLockError(err))
	}

	if _, err := tx.Exec(ctx, sqlinline.QApplyFundSettlement,
		fund.CurrentAmount, fund.TotalParticipants, fund.Status, fund.ID); err != nil {
		return nil, fmt.Errorf("credit fund: %w", mapLockError(err))
	}

	if _, err := tx.Exec(ctx, sqlinline.QInsertTransaction,
		record.ID, record.UserID, record.FundID, record.Amount, record.Tax, record.Note, record.CreatedAt); err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", mapLockError(err))
	}
	return record, nil
}

func lockUser(ctx context.Context, tx pgx.Tx, id string) (*domain.User, error) {
	row := tx.QueryRow(ctx, sqlinline.QLockUser, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, mapLockError(err)
	}
	return user, nil
}

func lockFund(ctx context.Context, tx pgx.Tx, id string) (*domain.Fund, error) {
	row := tx.QueryRow(ctx, sqlinline.QLockFund, id)
	fund, err := scanFund(row)
	if err != nil {
		return nil, mapLockError(err)
	}
	return fund, nil
}

// mapLockError converts lock contention into domain.ErrConflict so the
// handler can answer with a retryable status instead of a generic failure.
func mapLockError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgSerializationFailure, pgDeadlockDetected:
			return domain.ErrConflict
		}
	}
	return err
}
