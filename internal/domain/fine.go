package domain

import (
	"time"

	"github.com/google/uuid"
)

// FineType представляет тип нарушения
type FineType string

const (
	FineTypeOverstay             FineType = "overstay"
	FineTypeUnauthorizedReserved FineType = "unauthorized_reserved"
	FineTypeUnpaidBalance        FineType = "unpaid_balance"
)

// Fine - штраф, закрепленный за номером автомобиля.
// Штраф НЕ привязан к конкретной сессии: он висит на номере до оплаты.
// Несколько неоплаченных штрафов на один номер допустимы и независимы.
type Fine struct {
	ID           uuid.UUID `json:"id"`
	LicensePlate string    `json:"license_plate"`
	Type         FineType  `json:"type"`
	Amount       float64   `json:"amount"`
	IssuedAt     time.Time `json:"issued_at"`
	Paid         bool      `json:"paid"` // терминальный флаг, не удаление
}

// NewFine создает неоплаченный штраф
func NewFine(plate string, fineType FineType, amount float64) *Fine {
	return &Fine{
		ID:           uuid.New(),
		LicensePlate: NormalizeLicensePlate(plate),
		Type:         fineType,
		Amount:       amount,
		IssuedAt:     time.Now(),
		Paid:         false,
	}
}

// Validate проверяет корректность данных штрафа
func (f *Fine) Validate() error {
	if f.LicensePlate == "" {
		return ErrInvalidFineData
	}
	if f.Amount < 0 {
		return ErrInvalidFineData
	}
	switch f.Type {
	case FineTypeOverstay, FineTypeUnauthorizedReserved, FineTypeUnpaidBalance:
		return nil
	}
	return ErrInvalidFineData
}

// TotalFineAmount суммирует штрафы (nil-список трактуется как пустой)
func TotalFineAmount(fines []*Fine) float64 {
	var total float64
	for _, f := range fines {
		total += f.Amount
	}
	return total
}

// FinePolicy - стратегия расчета штрафа. Тегированный вариант вместо
// виртуального диспатча: расчет - чистая функция от тега.
type FinePolicy string

const (
	PolicyFixed       FinePolicy = "fixed"
	PolicyHourly      FinePolicy = "hourly"
	PolicyProgressive FinePolicy = "progressive"
)

// Параметры стоковых политик
const (
	FixedFineAmount     = 50.0
	HourlyFineRate      = 20.0
	ProgressiveBase     = 50.0
	ProgressiveSurcharge = 10.0
)

// IsValid проверяет, что политика известна системе
func (p FinePolicy) IsValid() bool {
	switch p {
	case PolicyFixed, PolicyHourly, PolicyProgressive:
		return true
	}
	return false
}

// Calculate считает сумму штрафа за overstayHours часов превышения.
// Тотальна над числовой областью, ошибок не возвращает.
func (p FinePolicy) Calculate(overstayHours int) float64 {
	if overstayHours < 0 {
		overstayHours = 0
	}
	switch p {
	case PolicyFixed:
		return FixedFineAmount
	case PolicyHourly:
		return HourlyFineRate * float64(overstayHours)
	case PolicyProgressive:
		return ProgressiveBase + ProgressiveSurcharge*float64(overstayHours)
	default:
		return 0
	}
}

// PolicyContext хранит ровно одну активную политику и момент ее включения.
// EffectiveFrom позволяет вызывающей стороне применять старую политику к
// штрафам до переключения и новую - после; сам контекст прошлые штрафы
// НЕ пересчитывает.
type PolicyContext struct {
	Active        FinePolicy `json:"active"`
	EffectiveFrom time.Time  `json:"effective_from"`
}

// NewPolicyContext создает контекст с заданной начальной политикой
func NewPolicyContext(initial FinePolicy) *PolicyContext {
	return &PolicyContext{
		Active:        initial,
		EffectiveFrom: time.Now(),
	}
}

// Switch переключает активную политику с момента at.
// Штрафы, выписанные до at, не пересчитываются.
func (c *PolicyContext) Switch(policy FinePolicy, at time.Time) error {
	if !policy.IsValid() {
		return ErrUnknownPolicy
	}
	c.Active = policy
	c.EffectiveFrom = at
	return nil
}
