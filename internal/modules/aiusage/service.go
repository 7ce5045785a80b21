package aiusage

import (
	"context"
	"errors"
)

// Service orchestrates token usage. A nil Service never limits.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseToken deducts one token from the customer's monthly allowance.
// If the row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, customerID string) error {
	if s == nil || s.store == nil {
		return nil
	}
	err := s.store.UseToken(ctx, customerID)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureCustomer(ctx, customerID); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, customerID)
}
