package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/google/uuid"
)

// fineRepository - in-memory реализация FineRepository.
// Используется в режиме работы без БД и в тестах.
type fineRepository struct {
	mu    sync.RWMutex
	fines map[uuid.UUID]*domain.Fine
}

func NewFineRepository() repository.FineRepository {
	return &fineRepository{
		fines: make(map[uuid.UUID]*domain.Fine),
	}
}

func (r *fineRepository) Create(_ context.Context, fine *domain.Fine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fine.ID == uuid.Nil {
		fine.ID = uuid.New()
	}
	fine.LicensePlate = domain.NormalizeLicensePlate(fine.LicensePlate)

	stored := *fine
	r.fines[fine.ID] = &stored
	return nil
}

func (r *fineRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fine, ok := r.fines[id]
	if !ok {
		return nil, domain.ErrFineNotFound
	}

	copied := *fine
	return &copied, nil
}

func (r *fineRepository) GetUnpaidByPlate(_ context.Context, licensePlate string) ([]*domain.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := domain.NormalizeLicensePlate(licensePlate)

	var fines []*domain.Fine
	for _, fine := range r.fines {
		if fine.LicensePlate == normalized && !fine.Paid {
			copied := *fine
			fines = append(fines, &copied)
		}
	}

	sort.Slice(fines, func(i, j int) bool {
		return fines[i].IssuedAt.Before(fines[j].IssuedAt)
	})

	return fines, nil
}

func (r *fineRepository) MarkPaid(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fine, ok := r.fines[id]
	if !ok {
		return domain.ErrFineNotFound
	}

	fine.Paid = true
	return nil
}

func (r *fineRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fines[id]; !ok {
		return domain.ErrFineNotFound
	}

	delete(r.fines, id)
	return nil
}

func (r *fineRepository) List(_ context.Context, limit, offset int) ([]*domain.Fine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Fine, 0, len(r.fines))
	for _, fine := range r.fines {
		copied := *fine
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].IssuedAt.After(all[j].IssuedAt)
	})

	if offset >= len(all) {
		return []*domain.Fine{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}
