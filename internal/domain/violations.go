package domain

import "time"

// OverstayThresholdHours - порог превышения времени стоянки
const OverstayThresholdHours = 24

// CheckOverstay проверяет превышение времени стоянки.
// Возвращает штраф по активной политике, если автомобиль стоит дольше
// OverstayThresholdHours, иначе nil. Не более одного штрафа за вызов;
// защита от повторного штрафа за то же нарушение - обязанность вызывающей
// стороны (проверить существующие неоплаченные overstay-штрафы по номеру).
func CheckOverstay(v *Vehicle, policy FinePolicy, now time.Time) *Fine {
	if v == nil || v.EntryTime.IsZero() {
		return nil
	}

	hours := ChargeableHours(v.EntryTime, now)
	if hours <= OverstayThresholdHours {
		return nil
	}

	return NewFine(v.LicensePlate, FineTypeOverstay, policy.Calculate(hours))
}

// CheckUnauthorizedReserved проверяет занятие зарезервированного места без
// права. Авторизованный occupant или место не категории reserved дают nil
// (отсутствие нарушения, а не штраф с нулевой суммой). Сумма считается по
// активной политике от проведенного на месте времени.
func CheckUnauthorizedReserved(v *Vehicle, spot *Spot, policy FinePolicy, now time.Time) *Fine {
	if v == nil || spot == nil {
		return nil
	}
	if spot.Type != SpotTypeReserved {
		return nil
	}
	if v.Authorized {
		return nil
	}

	hours := BillableHours(v.EntryTime, now)
	return NewFine(v.LicensePlate, FineTypeUnauthorizedReserved, policy.Calculate(hours))
}

// HasUnpaidOverstay сообщает, есть ли в списке неоплаченный overstay-штраф
// (используется для защиты от двойного штрафа)
func HasUnpaidOverstay(fines []*Fine) bool {
	for _, f := range fines {
		if f.Type == FineTypeOverstay && !f.Paid {
			return true
		}
	}
	return false
}
