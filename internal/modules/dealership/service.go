package dealership

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve finds the dealership that owns the receiving WhatsApp number, falling back to
// the first active dealership for single-tenant deployments.
func (s *Service) Resolve(ctx context.Context, businessNumber string) (*Dealership, error) {
	if digits := DigitsOnly(businessNumber); digits != "" {
		d, err := s.repo.ByWhatsAppNumber(ctx, digits)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return s.repo.FirstActive(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Dealership, error) {
	return s.repo.ByID(ctx, id)
}
