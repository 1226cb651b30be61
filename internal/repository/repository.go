package repository

import (
	"context"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/google/uuid"
)

// FineRepository определяет методы для работы со штрафами
type FineRepository interface {
	// Create создает новый штраф
	Create(ctx context.Context, fine *domain.Fine) error

	// GetByID возвращает штраф по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error)

	// GetUnpaidByPlate возвращает неоплаченные штрафы по номеру автомобиля
	// КЛЮЧЕВОЙ МЕТОД для расчета при выезде
	GetUnpaidByPlate(ctx context.Context, licensePlate string) ([]*domain.Fine, error)

	// MarkPaid помечает штраф оплаченным (терминальный флаг, не удаление)
	MarkPaid(ctx context.Context, id uuid.UUID) error

	// Delete удаляет штраф
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список штрафов с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Fine, error)
}

// PaymentRepository определяет методы для работы с записями об оплате
type PaymentRepository interface {
	// Create сохраняет запись об оплате
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByPlate возвращает историю оплат по номеру автомобиля
	GetByPlate(ctx context.Context, licensePlate string, limit, offset int) ([]*domain.Payment, error)

	// List возвращает список всех оплат с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Payment, error)
}

// LotRepository определяет методы для сохранения и восстановления структуры
// парковки (этажи, места, активные автомобили привязаны к местам)
type LotRepository interface {
	// Save сохраняет полный снимок парковки
	Save(ctx context.Context, lot *domain.Lot) error

	// Load восстанавливает снимок парковки; отсутствие - domain.ErrNotFound
	Load(ctx context.Context, name string) (*domain.Lot, error)
}
