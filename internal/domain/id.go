package domain

import "github.com/lithammer/shortuuid/v4"

// idLength matches the short identifier scheme used across all entities.
const idLength = 10

// NewID returns a 10 character base57 identifier.
func NewID() string {
	return shortuuid.New()[:idLength]
}
