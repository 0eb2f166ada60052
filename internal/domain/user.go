package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account within the platform. Balance is the
// spendable credit ("solde"); it is mutated only by donation settlements.
type User struct {
	ID           string
	PhoneNumber  string
	Name         string
	Country      string
	PasswordHash string
	Balance      decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanAfford reports whether the balance covers the given total debit.
func (u User) CanAfford(total decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(total)
}
