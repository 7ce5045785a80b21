package inventory

import (
	"context"
	"strings"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
)

// MaxResults caps every search.
const MaxResults = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns at most MaxResults unsold vehicles of the dealership matching f.
func (s *Service) Search(ctx context.Context, dealershipID int64, f ai.FilterSpec) ([]Vehicle, error) {
	vehicles, err := s.repo.Search(ctx, dealershipID, f, MaxResults)
	if err != nil {
		return nil, err
	}
	if len(vehicles) > MaxResults {
		vehicles = vehicles[:MaxResults]
	}
	return vehicles, nil
}

// FindByModel returns the first unsold vehicle whose model contains model.
func (s *Service) FindByModel(ctx context.Context, dealershipID int64, model string) (*Vehicle, error) {
	model = strings.TrimSpace(strings.ReplaceAll(model, "*", ""))
	if model == "" {
		return nil, ErrNotFound
	}
	v, err := s.repo.FindByModel(ctx, dealershipID, model)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}
