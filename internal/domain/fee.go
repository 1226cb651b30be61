package domain

import (
	"math"
	"time"
)

// Минимальная оплата - один час, даже если сессия короче часа
// или длительность неизмерима (entry == exit)
const MinimumChargeHours = 1

// ChargeableHours переводит интервал стоянки в оплачиваемые часы:
// ceil(минуты / 60). Если entry или exit отсутствуют (нулевые),
// длительность не определена и функция возвращает 0 - вызывающая сторона
// обязана подставить минимум MinimumChargeHours, а не выставить нулевой счет.
func ChargeableHours(entry, exit time.Time) int {
	if entry.IsZero() || exit.IsZero() {
		return 0
	}
	minutes := exit.Sub(entry).Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Ceil(minutes / 60.0))
}

// BillableHours - ChargeableHours с подставленным минимумом.
// Нулевая или неизмеримая длительность оплачивается как один час -
// нулевой выручки за состоявшуюся сессию не бывает.
func BillableHours(entry, exit time.Time) int {
	hours := ChargeableHours(entry, exit)
	if hours < MinimumChargeHours {
		return MinimumChargeHours
	}
	return hours
}

// ParkingFee считает стоимость стоянки: часы x эффективная ставка.
// Ставка места, КРОМЕ случая "авто с флагом handicapped на месте категории
// handicapped" - тогда действует льготная ставка RateHandicapped.
func ParkingFee(v *Vehicle, spot *Spot, durationHours int) float64 {
	if durationHours < 0 {
		durationHours = 0
	}

	rate := spot.Type.HourlyRate()
	if v.Handicapped && spot.Type == SpotTypeHandicapped {
		rate = RateHandicapped
	}

	return float64(durationHours) * rate
}

// TotalDue - итог к оплате: стоянка + штрафы, не меньше нуля
func TotalDue(parkingFee, totalFines float64) float64 {
	total := parkingFee + totalFines
	if total < 0 {
		return 0
	}
	return total
}
