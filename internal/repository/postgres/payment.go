package postgres

import (
	"context"

	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type paymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, license_plate, parking_fee, fine_total, amount_paid, method, remaining_balance, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	payment.LicensePlate = domain.NormalizeLicensePlate(payment.LicensePlate)

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.LicensePlate,
		payment.ParkingFee,
		payment.FineTotal,
		payment.AmountPaid,
		payment.Method,
		payment.RemainingBalance,
		payment.PaidAt,
	)

	return err
}

func (r *paymentRepository) GetByPlate(ctx context.Context, licensePlate string, limit, offset int) ([]*domain.Payment, error) {
	query := `
		SELECT id, license_plate, parking_fee, fine_total, amount_paid, method, remaining_balance, paid_at
		FROM payments
		WHERE license_plate = $1
		ORDER BY paid_at DESC
		LIMIT $2 OFFSET $3
	`

	normalizedPlate := domain.NormalizeLicensePlate(licensePlate)

	rows, err := r.db.Query(ctx, query, normalizedPlate, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPayments(rows)
}

func (r *paymentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Payment, error) {
	query := `
		SELECT id, license_plate, parking_fee, fine_total, amount_paid, method, remaining_balance, paid_at
		FROM payments
		ORDER BY paid_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPayments(rows)
}

func scanPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	for rows.Next() {
		payment := &domain.Payment{}
		err := rows.Scan(
			&payment.ID,
			&payment.LicensePlate,
			&payment.ParkingFee,
			&payment.FineTotal,
			&payment.AmountPaid,
			&payment.Method,
			&payment.RemainingBalance,
			&payment.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, nil
}
