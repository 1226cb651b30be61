package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type fineRepository struct {
	db *pgxpool.Pool
}

func NewFineRepository(db *pgxpool.Pool) repository.FineRepository {
	return &fineRepository{db: db}
}

func (r *fineRepository) Create(ctx context.Context, fine *domain.Fine) error {
	query := `
		INSERT INTO fines (id, license_plate, fine_type, amount, issued_at, paid)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if fine.ID == uuid.Nil {
		fine.ID = uuid.New()
	}

	// Нормализуем номер перед сохранением
	fine.LicensePlate = domain.NormalizeLicensePlate(fine.LicensePlate)

	_, err := r.db.Exec(ctx, query,
		fine.ID,
		fine.LicensePlate,
		fine.Type,
		fine.Amount,
		fine.IssuedAt,
		fine.Paid,
	)

	return err
}

func (r *fineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	query := `
		SELECT id, license_plate, fine_type, amount, issued_at, paid
		FROM fines
		WHERE id = $1
	`

	fine := &domain.Fine{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&fine.ID,
		&fine.LicensePlate,
		&fine.Type,
		&fine.Amount,
		&fine.IssuedAt,
		&fine.Paid,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFineNotFound
		}
		return nil, err
	}

	return fine, nil
}

func (r *fineRepository) GetUnpaidByPlate(ctx context.Context, licensePlate string) ([]*domain.Fine, error) {
	query := `
		SELECT id, license_plate, fine_type, amount, issued_at, paid
		FROM fines
		WHERE license_plate = $1 AND paid = false
		ORDER BY issued_at
	`

	normalizedPlate := domain.NormalizeLicensePlate(licensePlate)

	rows, err := r.db.Query(ctx, query, normalizedPlate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fines []*domain.Fine
	for rows.Next() {
		fine := &domain.Fine{}
		err := rows.Scan(
			&fine.ID,
			&fine.LicensePlate,
			&fine.Type,
			&fine.Amount,
			&fine.IssuedAt,
			&fine.Paid,
		)
		if err != nil {
			return nil, err
		}
		fines = append(fines, fine)
	}

	return fines, nil
}

func (r *fineRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE fines
		SET paid = true
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFineNotFound
	}

	return nil
}

func (r *fineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM fines WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFineNotFound
	}

	return nil
}

func (r *fineRepository) List(ctx context.Context, limit, offset int) ([]*domain.Fine, error) {
	query := `
		SELECT id, license_plate, fine_type, amount, issued_at, paid
		FROM fines
		ORDER BY issued_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fines []*domain.Fine
	for rows.Next() {
		fine := &domain.Fine{}
		err := rows.Scan(
			&fine.ID,
			&fine.LicensePlate,
			&fine.Type,
			&fine.Amount,
			&fine.IssuedAt,
			&fine.Paid,
		)
		if err != nil {
			return nil, err
		}
		fines = append(fines, fine)
	}

	return fines, nil
}
