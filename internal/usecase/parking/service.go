package parking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	"github.com/frontandrew/parklot/internal/pkg/metrics"
)

// EntryRequest - запрос на въезд
type EntryRequest struct {
	LicensePlate string             `json:"license_plate" validate:"required"`
	VehicleType  domain.VehicleType `json:"vehicle_type" validate:"required"`
	SpotID       string             `json:"spot_id" validate:"required"`
	Handicapped  bool               `json:"handicapped"`
	// Authorized - право занимать зарезервированные места
	Authorized bool `json:"authorized"`
}

// EntryResult - результат успешного въезда
type EntryResult struct {
	Vehicle *domain.Vehicle `json:"vehicle"`
	Spot    *domain.Spot    `json:"spot"`
	Ticket  string          `json:"ticket"`
}

// ActiveSession - активная сессия стоянки (пара автомобиль + место)
type ActiveSession struct {
	Vehicle *domain.Vehicle `json:"vehicle"`
	Spot    *domain.Spot    `json:"spot"`
}

// ExitSummary - расчет при выезде
type ExitSummary struct {
	Vehicle       *domain.Vehicle `json:"vehicle"`
	Spot          *domain.Spot    `json:"spot"`
	DurationHours int             `json:"duration_hours"`
	ParkingFee    float64         `json:"parking_fee"`
	FineTotal     float64         `json:"fine_total"`
	TotalDue      float64         `json:"total_due"`
	Fines         []*domain.Fine  `json:"fines"`
}

// SettleRequest - запрос на оплату и выезд
type SettleRequest struct {
	LicensePlate string               `json:"license_plate" validate:"required"`
	AmountPaid   float64              `json:"amount_paid"`
	Method       domain.PaymentMethod `json:"method"`
}

// Settlement - результат закрытия сессии
type Settlement struct {
	Summary    *ExitSummary    `json:"summary"`
	Payment    *domain.Payment `json:"payment"`
	Sufficient bool            `json:"sufficient"`
	// ShortfallFine - новый штраф unpaid_balance при недоплате, иначе nil
	ShortfallFine *domain.Fine `json:"shortfall_fine,omitempty"`
}

// Service содержит бизнес-логику въезда и выезда.
// Движок рассчитан на одного логического актора: все мутации Lot
// сериализуются через mu, поскольку сама модель взаимного исключения
// не содержит.
type Service struct {
	mu     sync.Mutex
	lot    *domain.Lot
	store  *Store
	logger logger.Logger
	now    func() time.Time
}

// NewService создает новый экземпляр ParkingService
func NewService(lot *domain.Lot, store *Store, log logger.Logger) *Service {
	return &Service{
		lot:    lot,
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// WithLot выполняет fn под блокировкой с эксклюзивным доступом к агрегату.
// Используется соседними сервисами (policy), чтобы все мутации Lot
// проходили через один замок.
func (s *Service) WithLot(fn func(lot *domain.Lot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.lot)
}

// Enter - въезд автомобиля (Spot: Available -> Occupied).
// Порядок проверок фиксирован:
//  1. обязательные поля
//  2. защита от дубликата: номер уже занимает какое-то место
//  3. место существует и свободно
//  4. матрица совместимости разрешает комбинацию
//
// Любой отказ - описательная ошибка валидации БЕЗ частичной мутации модели.
func (s *Service) Enter(ctx context.Context, req *EntryRequest) (*EntryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plate := domain.NormalizeLicensePlate(req.LicensePlate)

	// ШАГ 1: Предусловия
	if plate == "" {
		metrics.EntriesRejectedTotal.WithLabelValues("empty_plate").Inc()
		return nil, domain.ErrEmptyLicensePlate
	}
	if req.VehicleType == "" || !req.VehicleType.IsValid() {
		metrics.EntriesRejectedTotal.WithLabelValues("missing_type").Inc()
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingVehicleType, req.VehicleType)
	}
	if req.SpotID == "" {
		metrics.EntriesRejectedTotal.WithLabelValues("empty_spot").Inc()
		return nil, domain.ErrEmptySpotID
	}

	// ШАГ 2: Защита от повторного въезда - сканируем все занятые места
	if v, spot := s.lot.FindActiveVehicle(plate); v != nil {
		s.logger.Info("Duplicate entry rejected", map[string]interface{}{
			"plate": plate,
			"spot":  spot.ID,
		})
		metrics.EntriesRejectedTotal.WithLabelValues("duplicate").Inc()
		return nil, fmt.Errorf("%w: %s occupies spot %s", domain.ErrDuplicateEntry, plate, spot.ID)
	}

	// ШАГ 3: Место существует и свободно
	spot, err := s.lot.FindSpotByID(req.SpotID)
	if err != nil {
		metrics.EntriesRejectedTotal.WithLabelValues("spot_not_found").Inc()
		return nil, err
	}
	if !spot.IsAvailable() {
		metrics.EntriesRejectedTotal.WithLabelValues("spot_occupied").Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrSpotOccupied, spot.ID)
	}

	// ШАГ 4: Матрица совместимости
	if !domain.CanPark(req.VehicleType, req.Handicapped, spot.Type) {
		metrics.EntriesRejectedTotal.WithLabelValues("incompatible").Inc()
		return nil, fmt.Errorf("%w: %s in %s spot %s",
			domain.ErrIncompatibleSpot, req.VehicleType, spot.Type, spot.ID)
	}

	// ШАГ 5: Занимаем место и выдаем талон
	vehicle := &domain.Vehicle{
		LicensePlate: plate,
		Type:         req.VehicleType,
		Handicapped:  req.Handicapped,
		Authorized:   req.Authorized,
		EntryTime:    s.now(),
	}
	spot.Occupy(vehicle)

	ticket := vehicle.TicketNumber()

	s.logger.Info("Vehicle entered", map[string]interface{}{
		"plate":  plate,
		"spot":   spot.ID,
		"type":   req.VehicleType,
		"ticket": ticket,
	})
	metrics.EntriesTotal.Inc()

	// Персистентность best-effort - отказ не откатывает въезд
	s.store.SaveLot(ctx, s.lot)

	return &EntryResult{
		Vehicle: vehicle,
		Spot:    spot,
		Ticket:  ticket,
	}, nil
}

// Lookup ищет активную сессию по номеру. Отсутствие - nil, НЕ ошибка:
// вызывающая сторона ветвится по результату.
func (s *Service) Lookup(_ context.Context, plate string) *ActiveSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	vehicle, spot := s.lot.FindActiveVehicle(plate)
	if vehicle == nil {
		return nil
	}

	return &ActiveSession{Vehicle: vehicle, Spot: spot}
}

// Summarize готовит расчет при выезде: длительность (с минимумом в час),
// стоимость стоянки, сумма неоплаченных штрафов, итог.
// Перед расчетом выписываются штрафы за текущие нарушения (overstay,
// unauthorized reserved) - не более одного нового штрафа каждого типа.
// Отсутствие активной сессии - жесткая ошибка.
func (s *Service) Summarize(ctx context.Context, plate string) (*ExitSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.summarizeLocked(ctx, plate)
}

// summarizeLocked - Summarize под уже взятым замком (используется и Settle)
func (s *Service) summarizeLocked(ctx context.Context, plate string) (*ExitSummary, error) {
	vehicle, spot := s.lot.FindActiveVehicle(plate)
	if vehicle == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoActiveSession, domain.NormalizeLicensePlate(plate))
	}

	now := s.now()
	fines := s.store.UnpaidFines(ctx, vehicle.LicensePlate)

	// Нарушения на момент выезда; защита от двойного штрафа - по уже
	// существующим неоплаченным штрафам того же типа
	if !domain.HasUnpaidOverstay(fines) {
		if fine := domain.CheckOverstay(vehicle, s.lot.Policy.Active, now); fine != nil {
			s.store.SaveFine(ctx, fine)
			fines = append(fines, fine)
			metrics.FinesIssuedTotal.WithLabelValues(string(fine.Type)).Inc()
			s.logger.Info("Overstay fine issued", map[string]interface{}{
				"plate":  vehicle.LicensePlate,
				"amount": fine.Amount,
			})
		}
	}
	if !hasUnpaidOfType(fines, domain.FineTypeUnauthorizedReserved) {
		if fine := domain.CheckUnauthorizedReserved(vehicle, spot, s.lot.Policy.Active, now); fine != nil {
			s.store.SaveFine(ctx, fine)
			fines = append(fines, fine)
			metrics.FinesIssuedTotal.WithLabelValues(string(fine.Type)).Inc()
			s.logger.Info("Unauthorized reserved fine issued", map[string]interface{}{
				"plate":  vehicle.LicensePlate,
				"spot":   spot.ID,
				"amount": fine.Amount,
			})
		}
	}

	return buildSummary(vehicle, spot, fines, now), nil
}

// buildSummary - чистый расчет итога. nil-список штрафов трактуется как
// пустой и дает нулевую сумму штрафов, без паники.
func buildSummary(vehicle *domain.Vehicle, spot *domain.Spot, fines []*domain.Fine, now time.Time) *ExitSummary {
	hours := domain.BillableHours(vehicle.EntryTime, now)
	fee := domain.ParkingFee(vehicle, spot, hours)
	fineTotal := domain.TotalFineAmount(fines)

	return &ExitSummary{
		Vehicle:       vehicle,
		Spot:          spot,
		DurationHours: hours,
		ParkingFee:    fee,
		FineTotal:     fineTotal,
		TotalDue:      domain.TotalDue(fee, fineTotal),
		Fines:         fines,
	}
}

// Settle - оплата и выезд (Spot: Occupied -> Available).
// Семантика фиксирована:
//   - достаточность: paid >= totalDue (равенство достаточно)
//   - остаток: max(0, totalDue - paid)
//   - ВСЕ штрафы из расчета помечаются оплаченными независимо от
//     достаточности платежа: исходный долг закрывается, недоплата
//     становится НОВЫМ отдельным штрафом unpaid_balance
//   - место освобождается безусловно - недоплата не блокирует выезд
//   - paid накапливается в выручку
func (s *Service) Settle(ctx context.Context, req *SettleRequest) (*Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.AmountPaid < 0 {
		return nil, domain.ErrNegativePayment
	}

	summary, err := s.summarizeLocked(ctx, req.LicensePlate)
	if err != nil {
		return nil, err
	}

	vehicle := summary.Vehicle
	spot := summary.Spot
	now := s.now()

	sufficient := req.AmountPaid >= summary.TotalDue
	remaining := summary.TotalDue - req.AmountPaid
	if remaining < 0 {
		remaining = 0
	}

	// Закрываем все штрафы из расчета
	for _, fine := range summary.Fines {
		fine.Paid = true
		s.store.MarkFinePaid(ctx, fine.ID)
	}

	// Недоплата превращается ровно в один новый штраф
	var shortfallFine *domain.Fine
	if remaining > 0 {
		shortfallFine = domain.NewFine(vehicle.LicensePlate, domain.FineTypeUnpaidBalance, remaining)
		s.store.SaveFine(ctx, shortfallFine)
		metrics.FinesIssuedTotal.WithLabelValues(string(domain.FineTypeUnpaidBalance)).Inc()
		s.logger.Info("Unpaid balance fine created", map[string]interface{}{
			"plate":  vehicle.LicensePlate,
			"amount": remaining,
		})
	}

	// Освобождаем место и закрываем сессию
	vehicle.ExitTime = &now
	spot.Vacate()
	s.lot.AddRevenue(req.AmountPaid)

	payment := domain.NewPayment(
		vehicle.LicensePlate,
		summary.ParkingFee,
		summary.FineTotal,
		req.AmountPaid,
		req.Method,
	)
	s.store.SavePayment(ctx, payment)
	s.store.SaveLot(ctx, s.lot)

	metrics.ExitsTotal.Inc()
	metrics.RevenueTotal.Add(req.AmountPaid)

	s.logger.Info("Vehicle settled and departed", map[string]interface{}{
		"plate":      vehicle.LicensePlate,
		"spot":       spot.ID,
		"total_due":  summary.TotalDue,
		"paid":       req.AmountPaid,
		"remaining":  payment.RemainingBalance,
		"sufficient": sufficient,
	})

	return &Settlement{
		Summary:       summary,
		Payment:       payment,
		Sufficient:    sufficient,
		ShortfallFine: shortfallFine,
	}, nil
}

// Status возвращает сводку занятости парковки
func (s *Service) Status(_ context.Context) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"name":     s.lot.Name,
		"floors":   len(s.lot.Floors),
		"spots":    s.lot.SpotCount(),
		"occupied": s.lot.OccupiedCount(),
		"revenue":  s.lot.Revenue,
	}
}

// AvailableSpots возвращает свободные и совместимые места для типа
// транспортного средства
func (s *Service) AvailableSpots(_ context.Context, vehicleType domain.VehicleType, handicapped bool) []*domain.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lot.AvailableSpots(vehicleType, handicapped)
}

func hasUnpaidOfType(fines []*domain.Fine, fineType domain.FineType) bool {
	for _, f := range fines {
		if f.Type == fineType && !f.Paid {
			return true
		}
	}
	return false
}
