package geometry

import "github.com/plomlompom/plomrogue2-experiments/internal/core/types"

// Neighbor - соседняя клетка в одном направлении.
// InBounds=false, если сосед вне карты заданного размера.
type Neighbor struct {
	Dir      Direction
	Pos      types.YX
	InBounds bool
}

// NeighborCache мемоизирует соседей для фиксированной топологии и размера карты.
// Результаты неизменяемы, поэтому кэш никогда не инвалидируется.
// Не потокобезопасен: принадлежит одной карте и циклу игры.
type NeighborCache struct {
	geom  Geometry
	size  types.YX
	cache map[types.YX][]Neighbor
}

func NewNeighborCache(g Geometry, size types.YX) *NeighborCache {
	return &NeighborCache{
		geom:  g,
		size:  size,
		cache: make(map[types.YX][]Neighbor),
	}
}

// Get возвращает по одному соседу на каждое направление, в порядке Directions().
func (c *NeighborCache) Get(pos types.YX) []Neighbor {
	if cached, ok := c.cache[pos]; ok {
		return cached
	}
	dirs := c.geom.Directions()
	out := make([]Neighbor, 0, len(dirs))
	for _, d := range dirs {
		next, err := c.geom.Move(pos, d)
		if err != nil {
			continue
		}
		out = append(out, Neighbor{Dir: d, Pos: next, InBounds: c.size.Contains(next)})
	}
	c.cache[pos] = out
	return out
}
