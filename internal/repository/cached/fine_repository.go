package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/redis"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/google/uuid"
)

const (
	unpaidFinesCachePrefix = "fines:unpaid:"
	unpaidFinesCacheTTL    = 5 * time.Minute
)

// FineRepository добавляет кэширование к fine repository.
// Кэшируется только горячий путь GetUnpaidByPlate (вызывается на каждом
// выезде); мутации инвалидируют кэш по номеру.
type FineRepository struct {
	repo  repository.FineRepository
	cache *redis.Client
}

// NewFineRepository создает новый кэшируемый fine repository
func NewFineRepository(repo repository.FineRepository, cache *redis.Client) *FineRepository {
	return &FineRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetUnpaidByPlate возвращает неоплаченные штрафы по номеру (с кэшированием)
func (r *FineRepository) GetUnpaidByPlate(ctx context.Context, licensePlate string) ([]*domain.Fine, error) {
	normalized := domain.NormalizeLicensePlate(licensePlate)
	cacheKey := unpaidFinesCachePrefix + normalized

	// 1. Проверяем кэш; любая ошибка кэша не критична - идем в БД
	cachedValue, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var fines []*domain.Fine
		if unmarshalErr := json.Unmarshal([]byte(cachedValue), &fines); unmarshalErr == nil {
			return fines, nil
		}
		// Битое значение в кэше - сбрасываем и идем в БД
		_ = r.cache.Del(ctx, cacheKey)
	}

	// 2. Cache miss - идем в БД
	fines, err := r.repo.GetUnpaidByPlate(ctx, normalized)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш (ошибку записи игнорируем)
	if data, marshalErr := json.Marshal(fines); marshalErr == nil {
		_ = r.cache.Set(ctx, cacheKey, data, unpaidFinesCacheTTL)
	}

	return fines, nil
}

// Create создает штраф и инвалидирует кэш для его номера
func (r *FineRepository) Create(ctx context.Context, fine *domain.Fine) error {
	if err := r.repo.Create(ctx, fine); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, unpaidFinesCachePrefix+fine.LicensePlate)
	return nil
}

// MarkPaid помечает штраф оплаченным и инвалидирует кэш его номера
func (r *FineRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	// Нужен номер для инвалидации - читаем штраф до обновления
	fine, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.MarkPaid(ctx, id); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, unpaidFinesCachePrefix+fine.LicensePlate)
	return nil
}

// GetByID возвращает штраф по ID (без кэширования - используется редко)
func (r *FineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	return r.repo.GetByID(ctx, id)
}

// Delete удаляет штраф и инвалидирует кэш его номера
func (r *FineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	fine, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, unpaidFinesCachePrefix+fine.LicensePlate)
	return nil
}

// List возвращает список штрафов (списки не кэшируем - только для админки)
func (r *FineRepository) List(ctx context.Context, limit, offset int) ([]*domain.Fine, error) {
	return r.repo.List(ctx, limit, offset)
}
