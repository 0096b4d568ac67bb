package domain

import (
	"testing"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_GetSet(t *testing.T) {
	m := NewMap(geometry.Hex{}, types.YX{Y: 2, X: 3}, TerrainUnknown)
	assert.Equal(t, "??????", m.Terrain())

	require.NoError(t, m.Set(types.YX{Y: 1, X: 2}, TerrainRock))
	c, err := m.Get(types.YX{Y: 1, X: 2})
	require.NoError(t, err)
	assert.Equal(t, TerrainRock, c)

	_, err = m.Get(types.YX{Y: 2, X: 0})
	var argErr *types.ArgumentError
	assert.ErrorAs(t, err, &argErr)
	assert.Error(t, m.Set(types.YX{Y: 0, X: -1}, TerrainFloor))
	assert.Equal(t, TerrainBlank, m.At(types.YX{Y: 5, X: 5}))
}

func TestMap_SetLine(t *testing.T) {
	m := NewMap(geometry.Square{}, types.YX{Y: 2, X: 4}, TerrainFloor)

	require.NoError(t, m.SetLine(1, "#x"))
	assert.Equal(t, "....", m.Line(0))
	assert.Equal(t, "#x..", m.Line(1), "only the prefix is overwritten")

	require.NoError(t, m.SetLine(0, "~~~~"))
	assert.Equal(t, "~~~~#x..", m.Terrain())
}

func TestMap_SetLine_Rejects(t *testing.T) {
	m := NewMap(geometry.Square{}, types.YX{Y: 2, X: 4}, TerrainFloor)
	before := m.Terrain()

	assert.Error(t, m.SetLine(0, "#####"), "line wider than map")
	assert.Error(t, m.SetLine(2, "#"), "row out of range")
	assert.Error(t, m.SetLine(-1, "#"))
	assert.Equal(t, before, m.Terrain())
	assert.Len(t, []rune(m.Terrain()), 8)
}

func TestMap_SetLine_Unicode(t *testing.T) {
	m := NewMap(geometry.Square{}, types.YX{Y: 1, X: 3}, TerrainFloor)
	require.NoError(t, m.SetLine(0, "ÄÖÜ"))
	assert.Equal(t, "ÄÖÜ", m.Line(0))
}

func TestMap_PositionsAndLines(t *testing.T) {
	m := NewMap(geometry.Hex{}, types.YX{Y: 2, X: 2}, TerrainFloor)

	var got []types.YX
	for pos := range m.Positions() {
		got = append(got, pos)
	}
	assert.Equal(t, []types.YX{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, got)

	// повторный обход даёт то же самое
	count := 0
	for range m.Positions() {
		count++
	}
	assert.Equal(t, 4, count)

	rows := map[int]string{}
	for y, line := range m.Lines() {
		rows[y] = line
	}
	assert.Equal(t, map[int]string{0: "..", 1: ".."}, rows)
}

func TestMap_Move(t *testing.T) {
	m := NewMap(geometry.Square{}, types.YX{Y: 3, X: 3}, TerrainFloor)
	next, ok := m.Move(types.YX{Y: 1, X: 1}, geometry.Up)
	assert.True(t, ok)
	assert.Equal(t, types.YX{Y: 0, X: 1}, next)

	_, ok = m.Move(types.YX{Y: 0, X: 1}, geometry.Up)
	assert.False(t, ok)
}

func TestMap_CloneIsIndependent(t *testing.T) {
	m := NewMap(geometry.Hex{}, types.YX{Y: 1, X: 2}, TerrainFloor)
	c := m.Clone()
	require.NoError(t, c.Set(types.YX{}, TerrainRock))
	assert.Equal(t, "..", m.Terrain())
	assert.Equal(t, "x.", c.Terrain())
}

func TestTileSet_LazyTiles(t *testing.T) {
	ts := NewTileSet(geometry.Hex{}, types.YX{Y: 4, X: 4})
	generated := 0
	ts.Generator = func(big types.YX, m *Map) {
		generated++
		for pos := range m.Positions() {
			_ = m.Set(pos, TerrainFloor)
		}
	}

	assert.Nil(t, ts.GetMap(types.YX{Y: 1, X: 0}, false))
	assert.Equal(t, TerrainUnknown, ts.Cell(types.Position{Big: types.YX{Y: 1}}))

	m := ts.GetMap(types.YX{Y: 1, X: 0}, true)
	require.NotNil(t, m)
	assert.Same(t, m, ts.GetMap(types.YX{Y: 1, X: 0}, true))
	assert.Equal(t, 1, generated)

	// Cell нормализует позицию: (0,0)+(4,0) это тайл (1,0)
	assert.Equal(t, TerrainFloor, ts.Cell(types.Position{Small: types.YX{Y: 4, X: 0}}))

	ts.GetMap(types.YX{Y: -1, X: 3}, true)
	assert.Equal(t, []types.YX{{Y: -1, X: 3}, {Y: 1, X: 0}}, ts.Keys())
	assert.Equal(t, 2, ts.Len())
}
