package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/softphone-backend/internal/domain"
)

// SipAccountRepository reads provisioned SIP peers for credential checks.
type SipAccountRepository interface {
	GetByExtension(ctx context.Context, extension string) (*domain.SipAccount, error)
}

type sipAccountRepository struct {
	pool *pgxpool.Pool
}

// NewSipAccountRepository returns a Postgres-backed implementation.
func NewSipAccountRepository(pool *pgxpool.Pool) SipAccountRepository {
	return &sipAccountRepository{pool: pool}
}

// GetByExtension finds one account; (nil, nil) when absent.
func (r *sipAccountRepository) GetByExtension(ctx context.Context, extension string) (*domain.SipAccount, error) {
	if r.pool == nil {
		return nil, nil
	}

	const query = `
        SELECT id, extension, secret, disabled
        FROM sip_accounts WHERE extension=$1`

	var acct domain.SipAccount
	if err := r.pool.QueryRow(ctx, query, extension).Scan(
		&acct.ID,
		&acct.Extension,
		&acct.Secret,
		&acct.Disabled,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &acct, nil
}
