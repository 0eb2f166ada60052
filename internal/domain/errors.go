package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrFundClosed        = errors.New("fund is not open")
	ErrBelowMinimum      = errors.New("donation below minimum")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrConflict          = errors.New("conflicting update")
	ErrForbidden         = errors.New("forbidden")
	ErrPhoneTaken        = errors.New("phone number already registered")
)
