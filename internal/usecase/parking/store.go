package parking

import (
	"context"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/google/uuid"
)

// Store централизует best-effort персистентность движка.
// Отказ коллаборатора (БД недоступна, репозиторий не подключен) логируется
// и проглатывается - движок продолжает работать с состоянием в памяти.
// Отказ персистентности НИКОГДА не превращается в ошибку правил.
type Store struct {
	fines    repository.FineRepository
	payments repository.PaymentRepository
	lots     repository.LotRepository
	logger   logger.Logger
}

// NewStore создает адаптер персистентности. Любой репозиторий может быть nil -
// тогда соответствующие операции молча пропускаются (memory-only режим).
func NewStore(
	fines repository.FineRepository,
	payments repository.PaymentRepository,
	lots repository.LotRepository,
	log logger.Logger,
) *Store {
	return &Store{
		fines:    fines,
		payments: payments,
		lots:     lots,
		logger:   log,
	}
}

// UnpaidFines возвращает неоплаченные штрафы по номеру.
// При отказе коллаборатора возвращает пустой список - выезд продолжается
// без учета штрафов, отказ логируется.
func (s *Store) UnpaidFines(ctx context.Context, plate string) []*domain.Fine {
	if s.fines == nil {
		return nil
	}

	fines, err := s.fines.GetUnpaidByPlate(ctx, plate)
	if err != nil {
		s.logger.Error("Failed to load unpaid fines, continuing without them", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		return nil
	}

	return fines
}

// SaveFine сохраняет штраф best-effort
func (s *Store) SaveFine(ctx context.Context, fine *domain.Fine) {
	if s.fines == nil {
		return
	}

	if err := s.fines.Create(ctx, fine); err != nil {
		s.logger.Error("Failed to persist fine", map[string]interface{}{
			"fine_id": fine.ID,
			"plate":   fine.LicensePlate,
			"error":   err.Error(),
		})
	}
}

// MarkFinePaid помечает штраф оплаченным best-effort
func (s *Store) MarkFinePaid(ctx context.Context, id uuid.UUID) {
	if s.fines == nil {
		return
	}

	if err := s.fines.MarkPaid(ctx, id); err != nil {
		s.logger.Error("Failed to mark fine as paid", map[string]interface{}{
			"fine_id": id,
			"error":   err.Error(),
		})
	}
}

// SavePayment сохраняет запись об оплате best-effort
func (s *Store) SavePayment(ctx context.Context, payment *domain.Payment) {
	if s.payments == nil {
		return
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to persist payment", map[string]interface{}{
			"payment_id": payment.ID,
			"plate":      payment.LicensePlate,
			"error":      err.Error(),
		})
	}
}

// SaveLot сохраняет снимок парковки best-effort
func (s *Store) SaveLot(ctx context.Context, lot *domain.Lot) {
	if s.lots == nil {
		return
	}

	if err := s.lots.Save(ctx, lot); err != nil {
		s.logger.Error("Failed to persist lot snapshot", map[string]interface{}{
			"lot":   lot.Name,
			"error": err.Error(),
		})
	}
}

// LoadLot пытается восстановить снимок парковки; (nil, false) если снимка нет
// или коллаборатор недоступен
func (s *Store) LoadLot(ctx context.Context, name string) (*domain.Lot, bool) {
	if s.lots == nil {
		return nil, false
	}

	lot, err := s.lots.Load(ctx, name)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Warn("Failed to load lot snapshot, starting fresh", map[string]interface{}{
				"lot":   name,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	return lot, true
}
