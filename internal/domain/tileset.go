package domain

import (
	"sort"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
)

// TileGenerator заполняет только что созданный тайл рельефом.
type TileGenerator func(big types.YX, m *Map)

// TileSet - неограниченный мир из тайлов одинакового размера.
// Тайлы создаются лениво, чтобы память не росла вместе с миром.
type TileSet struct {
	TileSize  types.YX
	Generator TileGenerator

	geom  geometry.Geometry
	tiles map[types.YX]*Map
}

func NewTileSet(g geometry.Geometry, tileSize types.YX) *TileSet {
	return &TileSet{
		TileSize: tileSize,
		geom:     g,
		tiles:    make(map[types.YX]*Map),
	}
}

// Geometry возвращает топологию мира.
func (ts *TileSet) Geometry() geometry.Geometry {
	return ts.geom
}

// GetMap возвращает тайл по координате. Если тайла нет и create=true,
// создает его ('?'-заполненным) и пропускает через Generator, если он задан.
func (ts *TileSet) GetMap(big types.YX, create bool) *Map {
	if m, ok := ts.tiles[big]; ok {
		return m
	}
	if !create {
		return nil
	}
	m := NewMap(ts.geom, ts.TileSize, TerrainUnknown)
	if ts.Generator != nil {
		ts.Generator(big, m)
	}
	ts.tiles[big] = m
	return m
}

// Has проверяет, материализован ли тайл.
func (ts *TileSet) Has(big types.YX) bool {
	_, ok := ts.tiles[big]
	return ok
}

// Cell возвращает рельеф в позиции. Несуществующий тайл читается как '?'.
func (ts *TileSet) Cell(pos types.Position) rune {
	pos = pos.Normalize(ts.TileSize)
	m, ok := ts.tiles[pos.Big]
	if !ok {
		return TerrainUnknown
	}
	return m.At(pos.Small)
}

// Keys возвращает координаты тайлов в детерминированном порядке (Y, затем X).
func (ts *TileSet) Keys() []types.YX {
	keys := make([]types.YX, 0, len(ts.tiles))
	for k := range ts.tiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}

// Len - количество материализованных тайлов.
func (ts *TileSet) Len() int {
	return len(ts.tiles)
}
