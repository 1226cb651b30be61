package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type lotRepository struct {
	db *pgxpool.Pool
}

func NewLotRepository(db *pgxpool.Pool) repository.LotRepository {
	return &lotRepository{db: db}
}

// Save сохраняет полный снимок парковки как JSONB.
// Снимок включает этажи, места и активные автомобили (привязанные к местам),
// поэтому round-trip восстанавливает состояние целиком.
func (r *lotRepository) Save(ctx context.Context, lot *domain.Lot) error {
	query := `
		INSERT INTO lot_snapshots (name, state, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET state = $2, saved_at = $3
	`

	state, err := json.Marshal(lot)
	if err != nil {
		return fmt.Errorf("failed to marshal lot snapshot: %w", err)
	}

	_, err = r.db.Exec(ctx, query, lot.Name, state, time.Now())
	return err
}

func (r *lotRepository) Load(ctx context.Context, name string) (*domain.Lot, error) {
	query := `SELECT state FROM lot_snapshots WHERE name = $1`

	var state []byte
	err := r.db.QueryRow(ctx, query, name).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lot := &domain.Lot{}
	if err := json.Unmarshal(state, lot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lot snapshot: %w", err)
	}

	// Снимок обязан сохранить инварианты идентификаторов
	if err := lot.ValidateSpotIDs(); err != nil {
		return nil, fmt.Errorf("corrupted lot snapshot: %w", err)
	}

	return lot, nil
}
