package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cagnotte/internal/sqlinline"
)

// TokenRepositoryPG stores revoked refresh token identifiers so logout holds
// across process restarts and multiple instances.
type TokenRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepositoryPG.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepositoryPG {
	return &TokenRepositoryPG{pool: pool}
}

// Revoke records a refresh token JTI until the token's own expiry. Revoking
// the same token twice is a no-op.
func (r *TokenRepositoryPG) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, sqlinline.QInsertRevokedToken, jti, expiresAt)
	return err
}

// IsRevoked reports whether a refresh token JTI has been revoked. Expired
// entries no longer matter (the token itself is rejected first) but are
// still matched until swept.
func (r *TokenRepositoryPG) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := r.pool.QueryRow(ctx, sqlinline.QSelectTokenRevoked, jti).Scan(&revoked)
	return revoked, err
}
