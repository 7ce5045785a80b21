package inventory

import (
	"context"
	"sort"
	"sync"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
)

// MemoryStore is an in-process Repository with the same matching rules as Store.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	vehicles []Vehicle
}

func NewMemoryStore(vehicles ...Vehicle) *MemoryStore {
	s := &MemoryStore{}
	for _, v := range vehicles {
		s.Add(v)
	}
	return s
}

// Add stores v, assigning an id when it has none.
func (s *MemoryStore) Add(v Vehicle) Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		s.nextID++
		v.ID = s.nextID
	} else if v.ID > s.nextID {
		s.nextID = v.ID
	}
	s.vehicles = append(s.vehicles, v)
	sort.Slice(s.vehicles, func(i, j int) bool { return s.vehicles[i].ID < s.vehicles[j].ID })
	return v
}

func (s *MemoryStore) Search(_ context.Context, dealershipID int64, f ai.FilterSpec, limit int) ([]Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Vehicle
	for _, v := range s.vehicles {
		if len(out) == limit {
			break
		}
		if Matches(v, dealershipID, f) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindByModel(_ context.Context, dealershipID int64, model string) (*Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vehicles {
		if v.DealershipID == dealershipID && !v.Sold && ContainsFold(v.Model, model) {
			found := v
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
