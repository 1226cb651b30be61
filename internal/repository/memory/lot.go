package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/repository"
)

// lotRepository - in-memory реализация LotRepository.
// Хранит снимок в сериализованном виде, чтобы Load всегда возвращал
// независимую копию агрегата.
type lotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewLotRepository() repository.LotRepository {
	return &lotRepository{
		snapshots: make(map[string][]byte),
	}
}

func (r *lotRepository) Save(_ context.Context, lot *domain.Lot) error {
	state, err := json.Marshal(lot)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[lot.Name] = state
	return nil
}

func (r *lotRepository) Load(_ context.Context, name string) (*domain.Lot, error) {
	r.mu.RLock()
	state, ok := r.snapshots[name]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}

	lot := &domain.Lot{}
	if err := json.Unmarshal(state, lot); err != nil {
		return nil, err
	}

	return lot, nil
}
