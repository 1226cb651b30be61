package domain

import "fmt"

// Lot - агрегат парковки: упорядоченные этажи, накопленная выручка и
// активная политика штрафов. Ровно один Lot на работающую систему.
// Агрегат передается явно и владеется эксклюзивно - никакого глобального
// состояния; сериализацию конкурентного доступа обеспечивает слой usecase.
type Lot struct {
	Name    string         `json:"name"`
	Floors  []*Floor       `json:"floors"`
	Revenue float64        `json:"revenue"`
	Policy  *PolicyContext `json:"policy"`
}

// NewLot создает пустую парковку с политикой штрафов по умолчанию
func NewLot(name string) *Lot {
	return &Lot{
		Name:   name,
		Policy: NewPolicyContext(PolicyFixed),
	}
}

// AddFloor добавляет этаж; порядок добавления = порядок этажей
func (l *Lot) AddFloor() *Floor {
	floor := NewFloor(len(l.Floors) + 1)
	l.Floors = append(l.Floors, floor)
	return floor
}

// CreateRow создает ряд мест на этаже. count обязан совпадать с длиной
// списка категорий - иначе ErrRowSizeMismatch.
func (l *Lot) CreateRow(floorNumber, count int, spotTypes []SpotType) ([]*Spot, error) {
	if count != len(spotTypes) {
		return nil, fmt.Errorf("%w: count=%d, types=%d", ErrRowSizeMismatch, count, len(spotTypes))
	}
	if floorNumber < 1 || floorNumber > len(l.Floors) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFloor, floorNumber)
	}
	return l.Floors[floorNumber-1].AddRow(spotTypes), nil
}

// FindSpotByID ищет место по идентификатору линейным проходом по этажам.
// Отсутствие - sentinel ErrSpotNotFound.
func (l *Lot) FindSpotByID(id string) (*Spot, error) {
	for _, floor := range l.Floors {
		for _, row := range floor.Rows {
			for _, spot := range row {
				if spot.ID == id {
					return spot, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSpotNotFound, id)
}

// AvailableSpots возвращает РОВНО те места, которые свободны И подходят
// транспортному средству по матрице совместимости. Порядок - этаж/ряд/место.
func (l *Lot) AvailableSpots(vehicleType VehicleType, handicapped bool) []*Spot {
	var spots []*Spot
	for _, floor := range l.Floors {
		for _, row := range floor.Rows {
			for _, spot := range row {
				if spot.IsAvailable() && CanPark(vehicleType, handicapped, spot.Type) {
					spots = append(spots, spot)
				}
			}
		}
	}
	return spots
}

// FindActiveVehicle ищет припаркованный автомобиль по нормализованному
// номеру. Возвращает пару (автомобиль, место) или (nil, nil).
func (l *Lot) FindActiveVehicle(plate string) (*Vehicle, *Spot) {
	normalized := NormalizeLicensePlate(plate)
	for _, floor := range l.Floors {
		for _, row := range floor.Rows {
			for _, spot := range row {
				if spot.Vehicle != nil && spot.Vehicle.LicensePlate == normalized {
					return spot.Vehicle, spot
				}
			}
		}
	}
	return nil, nil
}

// SpotCount - общее количество мест на парковке
func (l *Lot) SpotCount() int {
	count := 0
	for _, floor := range l.Floors {
		count += floor.SpotCount()
	}
	return count
}

// OccupiedCount - количество занятых мест
func (l *Lot) OccupiedCount() int {
	count := 0
	for _, floor := range l.Floors {
		for _, row := range floor.Rows {
			for _, spot := range row {
				if !spot.IsAvailable() {
					count++
				}
			}
		}
	}
	return count
}

// AddRevenue накапливает выручку (монотонно неубывающая величина)
func (l *Lot) AddRevenue(amount float64) {
	if amount < 0 {
		return
	}
	l.Revenue += amount
}

// ValidateSpotIDs проверяет глобальные инварианты идентификаторов:
// уникальность в пределах парковки и соответствие формату F{n}-R{n}-S{n}.
// Инварианты обязаны выполняться после любой мутации структуры.
func (l *Lot) ValidateSpotIDs() error {
	seen := make(map[string]struct{}, l.SpotCount())
	for _, floor := range l.Floors {
		for _, row := range floor.Rows {
			for _, spot := range row {
				if !ValidSpotID(spot.ID) {
					return fmt.Errorf("%w: %s", ErrInvalidSpotID, spot.ID)
				}
				if _, ok := seen[spot.ID]; ok {
					return fmt.Errorf("%w: %s", ErrDuplicateSpotID, spot.ID)
				}
				seen[spot.ID] = struct{}{}
			}
		}
	}
	return nil
}

// defaultRowTypes - конфигурация рядов этажа по умолчанию
var defaultRowTypes = [][]SpotType{
	{SpotTypeCompact, SpotTypeCompact, SpotTypeCompact, SpotTypeCompact, SpotTypeCompact},
	{SpotTypeRegular, SpotTypeRegular, SpotTypeRegular, SpotTypeRegular, SpotTypeRegular},
	{SpotTypeHandicapped, SpotTypeHandicapped, SpotTypeReserved, SpotTypeReserved, SpotTypeRegular},
}

// BuildDefaultLot строит парковку стандартной конфигурации:
// 5 этажей по 3 ряда из 5 мест (ряд 1 - compact, ряд 2 - regular,
// ряд 3 - [handicapped, handicapped, reserved, reserved, regular]).
// Используется bootstrap-ом и как тестовая фикстура.
func BuildDefaultLot(name string) *Lot {
	lot := NewLot(name)
	for i := 0; i < 5; i++ {
		floor := lot.AddFloor()
		for _, types := range defaultRowTypes {
			floor.AddRow(types)
		}
	}
	return lot
}
