package aiusage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db        *pgxpool.Pool
	allowance int
	now       func() time.Time
}

// NewStore returns a Store granting allowance tokens per month.
func NewStore(db *pgxpool.Pool, allowance int) *Store {
	if allowance <= 0 {
		allowance = DefaultTokens
	}
	return &Store{db: db, allowance: allowance, now: time.Now}
}

// UseToken atomically checks the monthly quota and deducts one token.
// It resets the counter when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or customer absent).
func (s *Store) UseToken(ctx context.Context, customerID string) error {
	month := s.now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE customer_id = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, s.allowance, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureCustomer inserts a row with the full allowance, skipping existing rows.
func (s *Store) EnsureCustomer(ctx context.Context, customerID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (customer_id, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id) DO NOTHING
	`, customerID, s.allowance, s.now().Format("2006-01"))
	return err
}
