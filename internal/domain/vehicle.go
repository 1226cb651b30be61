package domain

import (
	"strings"
	"time"
)

// VehicleType представляет тип транспортного средства
type VehicleType string

const (
	VehicleTypeMotorcycle  VehicleType = "motorcycle"
	VehicleTypeCar         VehicleType = "car"
	VehicleTypeSUV         VehicleType = "suv"
	VehicleTypeTruck       VehicleType = "truck"
	VehicleTypeHandicapped VehicleType = "handicapped"
)

// IsValid проверяет, что тип транспортного средства известен системе
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTypeMotorcycle, VehicleTypeCar, VehicleTypeSUV, VehicleTypeTruck, VehicleTypeHandicapped:
		return true
	}
	return false
}

// Vehicle - автомобиль на парковке. Идентифицируется нормализованным номером.
// Экземпляр создается при въезде и завершает жизнь при выезде: повторный
// въезд с тем же номером - это НОВЫЙ Vehicle.
type Vehicle struct {
	LicensePlate string      `json:"license_plate"`
	Type         VehicleType `json:"type"`
	Handicapped  bool        `json:"handicapped"`
	// Authorized - право занимать места категории reserved без штрафа
	Authorized bool       `json:"authorized"`
	EntryTime  time.Time  `json:"entry_time"`
	ExitTime   *time.Time `json:"exit_time,omitempty"`
}

// NormalizeLicensePlate нормализует номер автомобиля (убирает пробелы по краям,
// приводит к верхнему регистру)
func NormalizeLicensePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// ticketTimeLayout - yyyyMMddHHmmss времени въезда
const ticketTimeLayout = "20060102150405"

// Ticket формирует номер талона T-{PLATE}-{yyyyMMddHHmmss}.
// Талон не хранится как сущность - он восстановим из (номер, время въезда).
func Ticket(plate string, entryTime time.Time) string {
	return "T-" + NormalizeLicensePlate(plate) + "-" + entryTime.Format(ticketTimeLayout)
}

// TicketNumber возвращает номер талона для этого автомобиля
func (v *Vehicle) TicketNumber() string {
	return Ticket(v.LicensePlate, v.EntryTime)
}
