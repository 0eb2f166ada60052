package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cagnotte/internal/domain"
	"cagnotte/internal/sqlinline"
)

// TransactionRepositoryPG reads settled donations from PostgreSQL. Inserts
// happen exclusively inside the settlement transaction.
type TransactionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepositoryPG.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepositoryPG {
	return &TransactionRepositoryPG{pool: pool}
}

// ListByUser returns the donations made by a user, newest first.
func (r *TransactionRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QSelectTransactionsByUser, userID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// ListByFund returns the donations credited to a fund, newest first.
func (r *TransactionRepositoryPG) ListByFund(ctx context.Context, fundID string) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QSelectTransactionsByFund, fundID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()

	var items []domain.Transaction
	for rows.Next() {
		var tr domain.Transaction
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.FundID, &tr.Amount, &tr.Tax, &tr.Note, &tr.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
