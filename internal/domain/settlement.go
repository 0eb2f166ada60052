package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementTerms carries the platform constants that price a donation. They
// are injected from configuration so the arithmetic stays free of globals.
type SettlementTerms struct {
	// TaxRate is the surcharge applied on top of the donation amount. The
	// tax is debited from the donor but not credited to the fund.
	TaxRate decimal.Decimal
	// MinimumDonation is the smallest accepted donation amount.
	MinimumDonation decimal.Decimal
}

// Tax returns the surcharge for a donation amount, rounded to cents.
func (t SettlementTerms) Tax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(t.TaxRate).Round(2)
}

// Settle applies one donation to the donor and the fund in memory and returns
// the transaction record to persist. The caller must have loaded both rows
// under an exclusive lock and must commit all three writes atomically. On any
// error neither the donor nor the fund is modified.
//
// A donation that overshoots the remaining target is credited in full; the
// fund closes in the same settlement, surplus included.
func (t SettlementTerms) Settle(donor *User, fund *Fund, amount decimal.Decimal, note string, now time.Time) (*Transaction, error) {
	if !fund.IsOpen() {
		return nil, ErrFundClosed
	}
	if amount.LessThan(t.MinimumDonation) {
		return nil, ErrBelowMinimum
	}

	tax := t.Tax(amount)
	totalDebit := amount.Add(tax)
	if !donor.CanAfford(totalDebit) {
		return nil, ErrInsufficientFunds
	}

	donor.Balance = donor.Balance.Sub(totalDebit)
	fund.CurrentAmount = fund.CurrentAmount.Add(amount)
	fund.TotalParticipants++
	if fund.CurrentAmount.GreaterThanOrEqual(fund.TargetAmount) {
		fund.Status = FundStatusClosed
	}

	return &Transaction{
		ID:        NewID(),
		UserID:    donor.ID,
		FundID:    fund.ID,
		Amount:    amount,
		Tax:       tax,
		Note:      note,
		CreatedAt: now,
	}, nil
}
