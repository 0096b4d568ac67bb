package domain

import (
	"iter"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
)

// Символы рельефа
const (
	TerrainFloor   = '.'
	TerrainWater   = '~'
	TerrainRock    = 'x'
	TerrainWall    = '#'
	TerrainUnknown = '?'
	TerrainBlank   = ' '
)

// Map - прямоугольная сетка клеток рельефа фиксированного размера.
//
// Рельеф хранится плоским слайсом, индекс клетки = y*width + x.
// Инвариант: len(terrain) == Size.Y * Size.X всегда.
type Map struct {
	Size types.YX

	terrain   []rune
	geom      geometry.Geometry
	neighbors *geometry.NeighborCache
}

// NewMap создает карту, заполненную символом fill.
func NewMap(g geometry.Geometry, size types.YX, fill rune) *Map {
	if size.Y < 0 || size.X < 0 {
		size = types.YX{}
	}
	terrain := make([]rune, size.Area())
	for i := range terrain {
		terrain[i] = fill
	}
	return &Map{Size: size, terrain: terrain, geom: g}
}

// Geometry возвращает топологию карты.
func (m *Map) Geometry() geometry.Geometry {
	return m.geom
}

func (m *Map) index(pos types.YX) int {
	return pos.Y*m.Size.X + pos.X
}

// Get возвращает символ клетки. Ошибка, если pos вне карты.
func (m *Map) Get(pos types.YX) (rune, error) {
	if !m.Size.Contains(pos) {
		return 0, types.ArgErrorf("position %s outside map of size %s", pos, m.Size)
	}
	return m.terrain[m.index(pos)], nil
}

// Set записывает символ клетки. Ошибка, если pos вне карты.
func (m *Map) Set(pos types.YX, c rune) error {
	if !m.Size.Contains(pos) {
		return types.ArgErrorf("position %s outside map of size %s", pos, m.Size)
	}
	m.terrain[m.index(pos)] = c
	return nil
}

// At - быстрый доступ без ошибки для вызывающих, которые уже проверили границы
// (например, итерация по Positions). Вне карты возвращает TerrainBlank.
func (m *Map) At(pos types.YX) rune {
	if !m.Size.Contains(pos) {
		return TerrainBlank
	}
	return m.terrain[m.index(pos)]
}

// SetLine переписывает начало строки row символами line.
// Остаток строки не трогается: так протокол может присылать рельеф частями.
// Слишком большой номер строки или слишком длинная линия - ошибка без изменений карты.
func (m *Map) SetLine(row int, line string) error {
	if row < 0 || row >= m.Size.Y {
		return types.ArgErrorf("too large row number %d", row)
	}
	runes := []rune(line)
	if len(runes) > m.Size.X {
		return types.ArgErrorf("too large map line width %d", len(runes))
	}
	copy(m.terrain[row*m.Size.X:], runes)
	return nil
}

// Line возвращает строку рельефа целиком.
func (m *Map) Line(row int) string {
	if row < 0 || row >= m.Size.Y {
		return ""
	}
	start := row * m.Size.X
	return string(m.terrain[start : start+m.Size.X])
}

// Positions - ленивый обход всех клеток построчно. Можно запускать повторно.
func (m *Map) Positions() iter.Seq[types.YX] {
	return func(yield func(types.YX) bool) {
		for y := 0; y < m.Size.Y; y++ {
			for x := 0; x < m.Size.X; x++ {
				if !yield(types.YX{Y: y, X: x}) {
					return
				}
			}
		}
	}
}

// Lines - ленивый обход пар (номер строки, полная строка) для сериализации.
func (m *Map) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for y := 0; y < m.Size.Y; y++ {
			if !yield(y, m.Line(y)) {
				return
			}
		}
	}
}

// Terrain возвращает весь рельеф одной строкой (без разделителей строк).
func (m *Map) Terrain() string {
	return string(m.terrain)
}

// NewFromShape создает карту того же размера и топологии, заполненную fill.
func (m *Map) NewFromShape(fill rune) *Map {
	return NewMap(m.geom, m.Size, fill)
}

// Clone - глубокая копия рельефа.
func (m *Map) Clone() *Map {
	c := m.NewFromShape(TerrainBlank)
	copy(c.terrain, m.terrain)
	return c
}

// Neighbors возвращает соседей клетки (мемоизировано на карту).
func (m *Map) Neighbors(pos types.YX) []geometry.Neighbor {
	if m.neighbors == nil {
		m.neighbors = geometry.NewNeighborCache(m.geom, m.Size)
	}
	return m.neighbors.Get(pos)
}

// Move делает шаг и сообщает, остался ли результат внутри карты.
func (m *Map) Move(pos types.YX, d geometry.Direction) (types.YX, bool) {
	next, err := m.geom.Move(pos, d)
	if err != nil {
		return pos, false
	}
	return next, m.Size.Contains(next)
}
