package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	"github.com/frontandrew/parklot/internal/pkg/metrics"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/google/uuid"
)

// LotAccess дает эксклюзивный доступ к агрегату парковки.
// Все мутации Lot проходят через один замок parking-сервиса.
type LotAccess interface {
	WithLot(fn func(lot *domain.Lot) error) error
}

// PolicyState - активная политика и момент ее включения
type PolicyState struct {
	Active        domain.FinePolicy `json:"active"`
	EffectiveFrom time.Time         `json:"effective_from"`
}

// Violation - результат проверки одного занятого места
type Violation struct {
	SpotID string       `json:"spot_id"`
	Fine   *domain.Fine `json:"fine"`
}

// Service содержит бизнес-логику управления политикой штрафов:
// переключение активной политики, явная проверка нарушений по всей
// парковке, ручное управление штрафами.
type Service struct {
	lots   LotAccess
	fines  repository.FineRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService создает новый экземпляр PolicyService
func NewService(lots LotAccess, fines repository.FineRepository, log logger.Logger) *Service {
	return &Service{
		lots:   lots,
		fines:  fines,
		logger: log,
		now:    time.Now,
	}
}

// Get возвращает активную политику и ее effective-from
func (s *Service) Get(_ context.Context) (*PolicyState, error) {
	var state PolicyState
	err := s.lots.WithLot(func(lot *domain.Lot) error {
		state.Active = lot.Policy.Active
		state.EffectiveFrom = lot.Policy.EffectiveFrom
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Switch переключает активную политику штрафов.
// Фиксируется effectiveFrom = now: штрафы, выписанные до переключения,
// НЕ пересчитываются - вызывающая сторона может разграничить их по
// отметке времени.
func (s *Service) Switch(_ context.Context, policy domain.FinePolicy) (*PolicyState, error) {
	var state PolicyState
	err := s.lots.WithLot(func(lot *domain.Lot) error {
		if err := lot.Policy.Switch(policy, s.now()); err != nil {
			return fmt.Errorf("%w: %q", domain.ErrUnknownPolicy, policy)
		}
		state.Active = lot.Policy.Active
		state.EffectiveFrom = lot.Policy.EffectiveFrom
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Fine policy switched", map[string]interface{}{
		"policy":         state.Active,
		"effective_from": state.EffectiveFrom,
	})

	return &state, nil
}

// EvaluateLot явно проверяет нарушения по всем занятым местам и выписывает
// штрафы по активной политике. Не более одного нового штрафа каждого типа
// на номер: уже имеющийся неоплаченный штраф того же типа блокирует повтор.
func (s *Service) EvaluateLot(ctx context.Context) ([]*Violation, error) {
	now := s.now()
	var violations []*Violation

	err := s.lots.WithLot(func(lot *domain.Lot) error {
		for _, floor := range lot.Floors {
			for _, row := range floor.Rows {
				for _, spot := range row {
					if spot.Vehicle == nil {
						continue
					}
					violations = append(violations, s.evaluateSpot(ctx, lot, spot, now)...)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return violations, nil
}

// evaluateSpot проверяет одно занятое место на оба типа нарушений
func (s *Service) evaluateSpot(ctx context.Context, lot *domain.Lot, spot *domain.Spot, now time.Time) []*Violation {
	vehicle := spot.Vehicle
	existing := s.unpaidFines(ctx, vehicle.LicensePlate)

	var violations []*Violation

	if !domain.HasUnpaidOverstay(existing) {
		if fine := domain.CheckOverstay(vehicle, lot.Policy.Active, now); fine != nil {
			s.createFine(ctx, fine)
			violations = append(violations, &Violation{SpotID: spot.ID, Fine: fine})
		}
	}

	if !hasUnpaidOfType(existing, domain.FineTypeUnauthorizedReserved) {
		if fine := domain.CheckUnauthorizedReserved(vehicle, spot, lot.Policy.Active, now); fine != nil {
			s.createFine(ctx, fine)
			violations = append(violations, &Violation{SpotID: spot.ID, Fine: fine})
		}
	}

	return violations
}

// CreateFine выписывает штраф вручную (админская операция)
func (s *Service) CreateFine(ctx context.Context, plate string, fineType domain.FineType, amount float64) (*domain.Fine, error) {
	fine := domain.NewFine(plate, fineType, amount)
	if err := fine.Validate(); err != nil {
		return nil, err
	}

	if err := s.fines.Create(ctx, fine); err != nil {
		return nil, fmt.Errorf("failed to create fine: %w", err)
	}

	metrics.FinesIssuedTotal.WithLabelValues(string(fineType)).Inc()
	s.logger.Info("Fine created manually", map[string]interface{}{
		"plate":  fine.LicensePlate,
		"type":   fine.Type,
		"amount": fine.Amount,
	})

	return fine, nil
}

// DeleteFine удаляет штраф (админская операция)
func (s *Service) DeleteFine(ctx context.Context, id uuid.UUID) error {
	return s.fines.Delete(ctx, id)
}

// UnpaidFines возвращает неоплаченные штрафы по номеру
func (s *Service) UnpaidFines(ctx context.Context, plate string) ([]*domain.Fine, error) {
	fines, err := s.fines.GetUnpaidByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to get unpaid fines: %w", err)
	}
	if fines == nil {
		fines = []*domain.Fine{}
	}
	return fines, nil
}

// unpaidFines - best-effort вариант для проверки нарушений: отказ
// коллаборатора дает пустой список, а не прерывание обхода
func (s *Service) unpaidFines(ctx context.Context, plate string) []*domain.Fine {
	fines, err := s.fines.GetUnpaidByPlate(ctx, plate)
	if err != nil {
		s.logger.Error("Failed to load unpaid fines during evaluation", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		return nil
	}
	return fines
}

// createFine сохраняет штраф best-effort во время обхода нарушений
func (s *Service) createFine(ctx context.Context, fine *domain.Fine) {
	if err := s.fines.Create(ctx, fine); err != nil {
		s.logger.Error("Failed to persist violation fine", map[string]interface{}{
			"plate": fine.LicensePlate,
			"type":  fine.Type,
			"error": err.Error(),
		})
		return
	}

	metrics.FinesIssuedTotal.WithLabelValues(string(fine.Type)).Inc()
}

func hasUnpaidOfType(fines []*domain.Fine, fineType domain.FineType) bool {
	for _, f := range fines {
		if f.Type == fineType && !f.Paid {
			return true
		}
	}
	return false
}
