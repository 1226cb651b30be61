package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod представляет способ оплаты
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// Payment - неизменяемая запись об одной транзакции выезда
type Payment struct {
	ID               uuid.UUID     `json:"id"`
	LicensePlate     string        `json:"license_plate"`
	ParkingFee       float64       `json:"parking_fee"`
	FineTotal        float64       `json:"fine_total"`
	AmountPaid       float64       `json:"amount_paid"`
	Method           PaymentMethod `json:"method"`
	RemainingBalance float64       `json:"remaining_balance"` // никогда не отрицателен
	PaidAt           time.Time     `json:"paid_at"`
}

// NewPayment создает запись об оплате; остаток прижимается к нулю
func NewPayment(plate string, fee, fineTotal, paid float64, method PaymentMethod) *Payment {
	remaining := fee + fineTotal - paid
	if remaining < 0 {
		remaining = 0
	}
	return &Payment{
		ID:               uuid.New(),
		LicensePlate:     NormalizeLicensePlate(plate),
		ParkingFee:       fee,
		FineTotal:        fineTotal,
		AmountPaid:       paid,
		Method:           method,
		RemainingBalance: remaining,
		PaidAt:           time.Now(),
	}
}
