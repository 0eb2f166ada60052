package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the immutable record of one settled donation. Amount is what
// the fund was credited; the donor was debited Amount plus Tax.
type Transaction struct {
	ID        string
	UserID    string
	FundID    string
	Amount    decimal.Decimal
	Tax       decimal.Decimal
	Note      string
	CreatedAt time.Time
}
