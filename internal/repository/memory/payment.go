package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/google/uuid"
)

// paymentRepository - in-memory реализация PaymentRepository
type paymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.Payment
}

func NewPaymentRepository() repository.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.LicensePlate = domain.NormalizeLicensePlate(payment.LicensePlate)

	stored := *payment
	r.payments = append(r.payments, &stored)
	return nil
}

func (r *paymentRepository) GetByPlate(_ context.Context, licensePlate string, limit, offset int) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := domain.NormalizeLicensePlate(licensePlate)

	var matched []*domain.Payment
	for _, p := range r.payments {
		if p.LicensePlate == normalized {
			copied := *p
			matched = append(matched, &copied)
		}
	}

	return paginate(matched, limit, offset), nil
}

func (r *paymentRepository) List(_ context.Context, limit, offset int) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		copied := *p
		all = append(all, &copied)
	}

	return paginate(all, limit, offset), nil
}

func paginate(payments []*domain.Payment, limit, offset int) []*domain.Payment {
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaidAt.After(payments[j].PaidAt)
	})

	if offset >= len(payments) {
		return []*domain.Payment{}
	}
	end := offset + limit
	if limit <= 0 || end > len(payments) {
		end = len(payments)
	}

	return payments[offset:end]
}
