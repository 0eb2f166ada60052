package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cagnotte/internal/domain"
	"cagnotte/internal/sqlinline"
)

// FundRepositoryPG implements domain.FundRepository backed by PostgreSQL.
type FundRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewFundRepository creates a new FundRepositoryPG.
func NewFundRepository(pool *pgxpool.Pool) *FundRepositoryPG {
	return &FundRepositoryPG{pool: pool}
}

// Create inserts a new fund.
func (r *FundRepositoryPG) Create(ctx context.Context, fund *domain.Fund) error {
	row := r.pool.QueryRow(ctx, sqlinline.QInsertFund,
		fund.ID,
		fund.Name,
		fund.OwnerID,
		fund.PhoneBeneficiary,
		fund.TargetAmount,
		fund.CurrentAmount,
		fund.TotalParticipants,
		fund.Description,
		fund.Deadline,
		fund.Status,
	)
	return row.Scan(&fund.CreatedAt, &fund.UpdatedAt)
}

// GetByID fetches a fund by its short id.
func (r *FundRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Fund, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QSelectFundByID, id)
	return scanFund(row)
}

// List returns funds, newest first, optionally filtered by status.
func (r *FundRepositoryPG) List(ctx context.Context, filter domain.FundFilter) ([]domain.Fund, error) {
	query := sqlinline.QSelectFunds
	args := []any{}
	if filter.Status != "" {
		query = sqlinline.QSelectFundsByStatus
		args = append(args, filter.Status)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Fund
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *fund)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists the owner-editable fields of a fund. Settlement fields
// (current_amount, total_participants, status) are only written by the
// settlement path and by Close.
func (r *FundRepositoryPG) Update(ctx context.Context, fund *domain.Fund) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QUpdateFundDetails,
		fund.Name, fund.PhoneBeneficiary, fund.TargetAmount, fund.Description, fund.Deadline, fund.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a fund.
func (r *FundRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QDeleteFund, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Close transitions an open fund to closed. The status predicate makes the
// transition race-free: a fund already closed by a concurrent settlement or
// owner action yields ErrConflict.
func (r *FundRepositoryPG) Close(ctx context.Context, id string) (*domain.Fund, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QCloseFund, domain.FundStatusClosed, id, domain.FundStatusOpen)

	fund, err := scanFund(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Distinguish a missing fund from an already closed one.
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, domain.ErrConflict
			}
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return fund, nil
}

func scanFund(row pgx.Row) (*domain.Fund, error) {
	var f domain.Fund
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.OwnerID,
		&f.PhoneBeneficiary,
		&f.TargetAmount,
		&f.CurrentAmount,
		&f.TotalParticipants,
		&f.Description,
		&f.Deadline,
		&f.Status,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
