package dealership

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository looks up active dealerships.
type Repository interface {
	ByID(ctx context.Context, id int64) (*Dealership, error)
	ByWhatsAppNumber(ctx context.Context, digits string) (*Dealership, error)
	FirstActive(ctx context.Context) (*Dealership, error)
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ByID(ctx context.Context, id int64) (*Dealership, error) {
	return s.one(ctx, `
		SELECT id, name, whatsapp_number, active
		FROM dealerships
		WHERE id = $1 AND active = TRUE`, id)
}

// ByWhatsAppNumber compares digits against the stored number with formatting removed.
func (s *Store) ByWhatsAppNumber(ctx context.Context, digits string) (*Dealership, error) {
	return s.one(ctx, `
		SELECT id, name, whatsapp_number, active
		FROM dealerships
		WHERE active = TRUE AND regexp_replace(whatsapp_number, '[^0-9]', '', 'g') = $1
		ORDER BY id
		LIMIT 1`, digits)
}

func (s *Store) FirstActive(ctx context.Context) (*Dealership, error) {
	return s.one(ctx, `
		SELECT id, name, whatsapp_number, active
		FROM dealerships
		WHERE active = TRUE
		ORDER BY id
		LIMIT 1`)
}

func (s *Store) one(ctx context.Context, query string, args ...any) (*Dealership, error) {
	var d Dealership
	err := s.db.QueryRow(ctx, query, args...).Scan(&d.ID, &d.Name, &d.WhatsAppNumber, &d.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
