package geometry

import (
	"fmt"
	"sort"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
)

// Direction - имя направления шага (UP, LEFT, UPRIGHT, ...).
type Direction string

// Направления. Квадратная сетка использует первые четыре,
// гексагональная - LEFT/RIGHT и четыре диагонали.
const (
	Up        Direction = "UP"
	Down      Direction = "DOWN"
	Left      Direction = "LEFT"
	Right     Direction = "RIGHT"
	UpLeft    Direction = "UPLEFT"
	UpRight   Direction = "UPRIGHT"
	DownLeft  Direction = "DOWNLEFT"
	DownRight Direction = "DOWNRIGHT"
)

var opposites = map[Direction]Direction{
	Up:        Down,
	Down:      Up,
	Left:      Right,
	Right:     Left,
	UpLeft:    DownRight,
	DownRight: UpLeft,
	UpRight:   DownLeft,
	DownLeft:  UpRight,
}

// Opposite возвращает противоположное направление.
func Opposite(d Direction) Direction {
	return opposites[d]
}

// Geometry описывает топологию сетки. Реализации не имеют состояния.
type Geometry interface {
	// Name - "hex" или "square".
	Name() string

	// Directions возвращает допустимые направления, отсортированные по имени.
	// Этот порядок используется для детерминированного выбора при равенстве.
	Directions() []Direction

	// Move - чистая функция: сосед pos в направлении d.
	// Выход за границы карты здесь не проверяется.
	Move(pos types.YX, d Direction) (types.YX, error)

	// CircleOut возвращает рёбра кольца обхода для FOV: для каждого ребра -
	// последовательность направлений, составляющих один шаг вдоль ребра.
	CircleOut() [][]Direction
}

// New выбирает геометрию по имени из конфига.
func New(name string) (Geometry, error) {
	switch name {
	case "hex", "":
		return Hex{}, nil
	case "square":
		return Square{}, nil
	}
	return nil, fmt.Errorf("unknown geometry %q", name)
}

// DirectionNames - строковые имена направлений (для string:direction в протоколе).
func DirectionNames(g Geometry) []string {
	dirs := g.Directions()
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = string(d)
	}
	return names
}

// IsDirection проверяет, объявлено ли направление в топологии.
func IsDirection(g Geometry, d Direction) bool {
	for _, known := range g.Directions() {
		if known == d {
			return true
		}
	}
	return false
}

// MoveTiled делает шаг в многотайловом мире. Чётность строк для гексов берётся
// по глобальной строке, поэтому переход через край тайла не сбивает смещение.
func MoveTiled(g Geometry, pos types.Position, d Direction, tileSize types.YX) (types.Position, error) {
	next, err := g.Move(pos.Global(tileSize), d)
	if err != nil {
		return pos, err
	}
	return types.PositionFromGlobal(next, tileSize), nil
}

func sortedDirections(dirs ...Direction) []Direction {
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}

func unknownDirection(g Geometry, d Direction) error {
	return types.ArgErrorf("unknown direction %s for %s geometry", d, g.Name())
}
