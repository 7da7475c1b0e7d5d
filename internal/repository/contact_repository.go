package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/softphone-backend/internal/domain"
)

// ContactRepository persists phonebook rows keyed by phone index.
type ContactRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Contact, error)
	Save(ctx context.Context, contact *domain.Contact) error
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository returns a Postgres-backed implementation.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

// GetByNumber finds one row by its phone index; (nil, nil) when absent.
func (r *contactRepository) GetByNumber(ctx context.Context, number string) (*domain.Contact, error) {
	if r.pool == nil {
		return nil, nil
	}

	const query = `
        SELECT id, number, number_rep, call_id, client, contact, ref, is_employee, created, changed
        FROM phonebook WHERE number=$1`

	var c domain.Contact
	if err := r.pool.QueryRow(ctx, query, number).Scan(
		&c.ID,
		&c.Number,
		&c.NumberRep,
		&c.CallID,
		&c.Client,
		&c.Contact,
		&c.Ref,
		&c.IsEmployee,
		&c.Created,
		&c.Changed,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Save upserts by phone index: one row per distinct index, updated in place.
func (r *contactRepository) Save(ctx context.Context, contact *domain.Contact) error {
	if r.pool == nil {
		return errors.New("no database connection")
	}

	const query = `
        INSERT INTO phonebook (number, number_rep, call_id, client, contact, ref, is_employee, created, changed)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (number) DO UPDATE SET
            number_rep=EXCLUDED.number_rep,
            call_id=EXCLUDED.call_id,
            client=EXCLUDED.client,
            contact=EXCLUDED.contact,
            ref=EXCLUDED.ref,
            is_employee=EXCLUDED.is_employee,
            changed=EXCLUDED.changed
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		contact.Number,
		contact.NumberRep,
		contact.CallID,
		contact.Client,
		contact.Contact,
		contact.Ref,
		contact.IsEmployee,
		contact.Created,
		contact.Changed,
	).Scan(&contact.ID)
}
