package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cagnotte/internal/domain"
	"cagnotte/internal/sqlinline"
)

const pgUniqueViolation = "23505"

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user. A phone number collision maps to ErrPhoneTaken.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	row := r.pool.QueryRow(ctx, sqlinline.QInsertUser,
		user.ID,
		user.PhoneNumber,
		user.Name,
		user.Country,
		user.PasswordHash,
		user.Balance,
		user.IsActive,
	)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrPhoneTaken
		}
		return err
	}
	return nil
}

// GetByID fetches a user by its short id.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QSelectUserByID, id)
	return scanUser(row)
}

// GetByPhone fetches a user by its normalized phone number.
func (r *UserRepositoryPG) GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QSelectUserByPhone, phoneNumber)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.PhoneNumber, &u.Name, &u.Country, &u.PasswordHash, &u.Balance, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
