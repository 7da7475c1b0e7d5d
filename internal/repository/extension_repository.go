package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/softphone-backend/internal/domain"
)

// ExtensionRepository resolves the external (mobile) number bound to an
// internal extension.
type ExtensionRepository interface {
	MobileForExtension(ctx context.Context, number string) (string, error)
}

type extensionRepository struct {
	pool *pgxpool.Pool
}

// NewExtensionRepository returns a Postgres-backed implementation.
func NewExtensionRepository(pool *pgxpool.Pool) ExtensionRepository {
	return &extensionRepository{pool: pool}
}

// MobileForExtension finds the owner of the internal number, then that
// owner's EXTERNAL extension, truncated to its rightmost 10 digits. Missing
// rows yield an empty string, not an error.
func (r *extensionRepository) MobileForExtension(ctx context.Context, number string) (string, error) {
	if r.pool == nil {
		return "", nil
	}

	var userID int64
	err := r.pool.QueryRow(ctx,
		`SELECT userid FROM extensions WHERE number=$1`, number,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	var mobile string
	err = r.pool.QueryRow(ctx,
		`SELECT number FROM extensions WHERE userid=$1 AND type=$2`,
		userID, domain.ExtensionTypeExternal,
	).Scan(&mobile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	if len(mobile) > 10 {
		mobile = mobile[len(mobile)-10:]
	}
	return mobile, nil
}
