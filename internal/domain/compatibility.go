package domain

// CanPark - матрица совместимости тип автомобиля x категория места.
// Чистая тотальная функция без побочных эффектов:
//   - флаг handicapped разрешает ЛЮБОЕ место независимо от типа
//   - тип handicapped разрешает любое место независимо от флага
//   - motorcycle -> только compact
//   - car -> compact или regular
//   - suv, truck -> только regular
//   - все остальные комбинации запрещены
func CanPark(vehicleType VehicleType, handicapped bool, spotType SpotType) bool {
	if handicapped {
		return true
	}

	switch vehicleType {
	case VehicleTypeHandicapped:
		return true
	case VehicleTypeMotorcycle:
		return spotType == SpotTypeCompact
	case VehicleTypeCar:
		return spotType == SpotTypeCompact || spotType == SpotTypeRegular
	case VehicleTypeSUV, VehicleTypeTruck:
		return spotType == SpotTypeRegular
	default:
		return false
	}
}

// CanParkVehicle - удобная обертка над CanPark для готового автомобиля
func CanParkVehicle(v *Vehicle, spot *Spot) bool {
	return CanPark(v.Type, v.Handicapped, spot.Type)
}
