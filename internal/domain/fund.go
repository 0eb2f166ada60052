package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundStatus enumerates the lifecycle states of a fund.
type FundStatus string

const (
	FundStatusOpen   FundStatus = "open"
	FundStatusClosed FundStatus = "closed"
)

// Fund is a cagnotte: a campaign collecting donations toward a target amount
// by a deadline. CurrentAmount and TotalParticipants only ever grow, and only
// through settlements; the status transitions open to closed exactly once.
type Fund struct {
	ID                string
	Name              string
	OwnerID           string
	PhoneBeneficiary  string
	TargetAmount      decimal.Decimal
	CurrentAmount     decimal.Decimal
	TotalParticipants int
	Description       string
	Deadline          time.Time
	Status            FundStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOpen reports whether the fund still accepts donations.
func (f Fund) IsOpen() bool {
	return f.Status == FundStatusOpen
}

// HasDonations reports whether any settlement has credited the fund. Owner
// updates and deletes are only allowed before the first donation.
func (f Fund) HasDonations() bool {
	return f.CurrentAmount.IsPositive() || f.TotalParticipants > 0
}
