package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestChargeableHours проверяет округление длительности вверх до часа
func TestChargeableHours(t *testing.T) {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry time.Time
		exit  time.Time
		want  int
	}{
		{"ровно час", base, base.Add(60 * time.Minute), 1},
		{"61 минута - два часа", base, base.Add(61 * time.Minute), 2},
		{"90 минут - два часа", base, base.Add(90 * time.Minute), 2},
		{"одна минута - час", base, base.Add(1 * time.Minute), 1},
		{"нулевая длительность", base, base, 0},
		{"выезд раньше въезда", base, base.Add(-10 * time.Minute), 0},
		{"нет времени въезда", time.Time{}, base, 0},
		{"нет времени выезда", base, time.Time{}, 0},
		{"сутки", base, base.Add(24 * time.Hour), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChargeableHours(tt.entry, tt.exit))
		})
	}
}

// TestBillableHours проверяет минимум в один час
func TestBillableHours(t *testing.T) {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	// entry == exit - минимальная оплата за час, а не ноль
	assert.Equal(t, 1, BillableHours(base, base))

	// неизмеримая длительность тоже оплачивается как час
	assert.Equal(t, 1, BillableHours(time.Time{}, time.Time{}))

	// полчаса - час
	assert.Equal(t, 1, BillableHours(base, base.Add(30*time.Minute)))

	// а измеримая длительность не трогается
	assert.Equal(t, 3, BillableHours(base, base.Add(150*time.Minute)))
}

// TestParkingFee проверяет выбор ставки и расчет стоимости
func TestParkingFee(t *testing.T) {
	tests := []struct {
		name        string
		vehicle     *Vehicle
		spotType    SpotType
		hours       int
		want        float64
	}{
		{
			name:     "легковой на regular",
			vehicle:  &Vehicle{LicensePlate: "ABC123", Type: VehicleTypeCar},
			spotType: SpotTypeRegular,
			hours:    2,
			want:     10.0,
		},
		{
			name:     "мотоцикл на compact",
			vehicle:  &Vehicle{LicensePlate: "M1", Type: VehicleTypeMotorcycle},
			spotType: SpotTypeCompact,
			hours:    3,
			want:     6.0,
		},
		{
			name:     "reserved - самая высокая ставка",
			vehicle:  &Vehicle{LicensePlate: "V1", Type: VehicleTypeCar, Handicapped: true},
			spotType: SpotTypeReserved,
			hours:    1,
			want:     10.0,
		},
		{
			name:     "льгота: handicapped на месте handicapped",
			vehicle:  &Vehicle{LicensePlate: "H1", Type: VehicleTypeCar, Handicapped: true},
			spotType: SpotTypeHandicapped,
			hours:    4,
			want:     8.0,
		},
		{
			name:     "без флага льгота не действует",
			vehicle:  &Vehicle{LicensePlate: "H2", Type: VehicleTypeHandicapped},
			spotType: SpotTypeRegular,
			hours:    2,
			want:     10.0,
		},
		{
			name:     "отрицательные часы прижимаются к нулю",
			vehicle:  &Vehicle{LicensePlate: "N1", Type: VehicleTypeCar},
			spotType: SpotTypeRegular,
			hours:    -5,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spot := NewSpot(1, 1, 1, tt.spotType)
			assert.Equal(t, tt.want, ParkingFee(tt.vehicle, spot, tt.hours))
		})
	}
}

func TestTotalDue(t *testing.T) {
	assert.Equal(t, 60.0, TotalDue(10.0, 50.0))
	assert.Equal(t, 10.0, TotalDue(10.0, 0))
	// итог никогда не отрицателен
	assert.Equal(t, 0.0, TotalDue(-20.0, 5.0))
}
