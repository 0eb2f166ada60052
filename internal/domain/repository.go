package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*User, error)
}

// FundFilter narrows fund listings. The zero value matches every fund.
type FundFilter struct {
	Status FundStatus
}

// FundRepository defines persistence for funds. Close transitions an open
// fund to closed and returns ErrConflict when the fund is already closed.
type FundRepository interface {
	Create(ctx context.Context, fund *Fund) error
	GetByID(ctx context.Context, id string) (*Fund, error)
	List(ctx context.Context, filter FundFilter) ([]Fund, error)
	Update(ctx context.Context, fund *Fund) error
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context, id string) (*Fund, error)
}

// TransactionRepository reads settled donations. Transactions are written
// only by the settlement path.
type TransactionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	ListByFund(ctx context.Context, fundID string) ([]Transaction, error)
}

// Settler performs the donation settlement: debit the donor, credit the fund,
// and append the transaction record as a single atomic unit.
type Settler interface {
	Settle(ctx context.Context, donorID, fundID string, amount decimal.Decimal, note string) (*Transaction, error)
}

// TokenRepository persists revoked refresh token identifiers so logout
// survives process restarts.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
