package systems

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
)

// MaxPathCost - стоимость недостижимой клетки.
const MaxPathCost = 256

// DijkstraMap - стоимости пути до ближайшей цели по видимой карте.
// Проходимыми считаются только клетки '.'; всё остальное, включая
// невидимое, - непроходимая неизвестность.
type DijkstraMap struct {
	visible *domain.Map
	costs   []int
}

// BuildDijkstraMap считает карту стоимостей перебором до неподвижной точки.
// Очередь с приоритетами не нужна: карты обзора маленькие.
func BuildDijkstraMap(visible *domain.Map, targets []types.YX) *DijkstraMap {
	dm := &DijkstraMap{
		visible: visible,
		costs:   make([]int, visible.Size.Area()),
	}
	for i := range dm.costs {
		dm.costs[i] = MaxPathCost
	}
	for _, t := range targets {
		if visible.Size.Contains(t) {
			dm.costs[dm.index(t)] = 0
		}
	}

	for shrunk := true; shrunk; {
		shrunk = false
		for pos := range visible.Positions() {
			if visible.At(pos) != domain.TerrainFloor {
				continue
			}
			i := dm.index(pos)
			for _, n := range visible.Neighbors(pos) {
				if !n.InBounds {
					continue
				}
				if c := dm.costs[dm.index(n.Pos)]; c < dm.costs[i]-1 {
					dm.costs[i] = c + 1
					shrunk = true
				}
			}
		}
	}
	return dm
}

func (dm *DijkstraMap) index(pos types.YX) int {
	return pos.Y*dm.visible.Size.X + pos.X
}

// Cost возвращает стоимость клетки; вне карты - MaxPathCost.
func (dm *DijkstraMap) Cost(pos types.YX) int {
	if !dm.visible.Size.Contains(pos) {
		return MaxPathCost
	}
	return dm.costs[dm.index(pos)]
}

// NextStep выбирает соседа с наименьшей стоимостью.
// При равенстве побеждает направление, раньше идущее по имени.
// false, если ни один сосед не достижим.
func (dm *DijkstraMap) NextStep(from types.YX) (geometry.Direction, bool) {
	best := MaxPathCost
	var dir geometry.Direction
	// Neighbors уже упорядочены по имени направления.
	for _, n := range dm.visible.Neighbors(from) {
		if !n.InBounds {
			continue
		}
		if c := dm.costs[dm.index(n.Pos)]; c < best {
			best = c
			dir = n.Dir
		}
	}
	return dir, dir != ""
}

// NextStepTowards - шаг от from к ближайшей из targets по видимой карте.
func NextStepTowards(visible *domain.Map, from types.YX, targets []types.YX) (geometry.Direction, bool) {
	if len(targets) == 0 {
		return "", false
	}
	return BuildDijkstraMap(visible, targets).NextStep(from)
}
