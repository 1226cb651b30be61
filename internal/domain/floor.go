package domain

// Floor - этаж парковки: ряды мест с 1-based адресацией
type Floor struct {
	Number int       `json:"number"`
	Rows   [][]*Spot `json:"rows"`
}

// NewFloor создает пустой этаж
func NewFloor(number int) *Floor {
	return &Floor{Number: number}
}

// AddRow добавляет ряд мест заданных категорий. Места нумеруются 1..len
// в порядке списка, идентификаторы детерминированы.
func (f *Floor) AddRow(spotTypes []SpotType) []*Spot {
	row := len(f.Rows) + 1
	spots := make([]*Spot, 0, len(spotTypes))
	for i, st := range spotTypes {
		spots = append(spots, NewSpot(f.Number, row, i+1, st))
	}
	f.Rows = append(f.Rows, spots)
	return spots
}

// SpotCount - количество мест на этаже (сумма длин рядов)
func (f *Floor) SpotCount() int {
	count := 0
	for _, row := range f.Rows {
		count += len(row)
	}
	return count
}

// Spots возвращает все места этажа в порядке ряд/место
func (f *Floor) Spots() []*Spot {
	spots := make([]*Spot, 0, f.SpotCount())
	for _, row := range f.Rows {
		spots = append(spots, row...)
	}
	return spots
}
