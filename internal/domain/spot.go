package domain

import (
	"fmt"
	"regexp"
)

// SpotType представляет категорию парковочного места
type SpotType string

const (
	SpotTypeCompact     SpotType = "compact"
	SpotTypeRegular     SpotType = "regular"
	SpotTypeHandicapped SpotType = "handicapped"
	SpotTypeReserved    SpotType = "reserved"
)

// Тарифы по категориям мест (фиксированные, в условных единицах за час)
const (
	RateCompact     = 2.0
	RateRegular     = 5.0
	RateHandicapped = 2.0
	RateReserved    = 10.0
)

// HourlyRate возвращает часовую ставку для категории места
func (t SpotType) HourlyRate() float64 {
	switch t {
	case SpotTypeCompact:
		return RateCompact
	case SpotTypeRegular:
		return RateRegular
	case SpotTypeHandicapped:
		return RateHandicapped
	case SpotTypeReserved:
		return RateReserved
	default:
		return 0
	}
}

// IsValid проверяет, что категория места известна системе
func (t SpotType) IsValid() bool {
	switch t {
	case SpotTypeCompact, SpotTypeRegular, SpotTypeHandicapped, SpotTypeReserved:
		return true
	}
	return false
}

// SpotStatus - состояние места (бинарный автомат Available <-> Occupied)
type SpotStatus string

const (
	SpotStatusAvailable SpotStatus = "available"
	SpotStatusOccupied  SpotStatus = "occupied"
)

// spotIDPattern - формат идентификатора места, используется persistence при round-trip
var spotIDPattern = regexp.MustCompile(`^F\d+-R\d+-S\d+$`)

// Spot - парковочное место, минимальная единица учета.
// Инвариант: Status == Occupied <=> Vehicle != nil
type Spot struct {
	ID      string     `json:"id"`
	Type    SpotType   `json:"type"`
	Status  SpotStatus `json:"status"`
	Vehicle *Vehicle   `json:"vehicle,omitempty"`
}

// SpotID формирует детерминированный идентификатор места F{floor}-R{row}-S{index}.
// Все компоненты 1-based и соответствуют физической позиции на момент создания.
func SpotID(floor, row, index int) string {
	return fmt.Sprintf("F%d-R%d-S%d", floor, row, index)
}

// ValidSpotID проверяет идентификатор на соответствие формату F{n}-R{n}-S{n}
func ValidSpotID(id string) bool {
	return spotIDPattern.MatchString(id)
}

// NewSpot создает свободное место заданной категории
func NewSpot(floor, row, index int, spotType SpotType) *Spot {
	return &Spot{
		ID:     SpotID(floor, row, index),
		Type:   spotType,
		Status: SpotStatusAvailable,
	}
}

// IsAvailable сообщает, свободно ли место
func (s *Spot) IsAvailable() bool {
	return s.Status == SpotStatusAvailable
}

// Occupy занимает место автомобилем.
// Повторное занятие уже занятого места НЕ меняет состояние (текущий
// occupant сохраняется) - вызывающая сторона обязана проверить IsAvailable.
func (s *Spot) Occupy(v *Vehicle) {
	if s.Status == SpotStatusOccupied {
		return
	}
	s.Status = SpotStatusOccupied
	s.Vehicle = v
}

// Vacate освобождает место и сбрасывает ссылку на автомобиль
func (s *Spot) Vacate() {
	s.Status = SpotStatusAvailable
	s.Vehicle = nil
}
