package dungeon

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func newTile(h, w int) *domain.Map {
	return domain.NewMap(geometry.Hex{}, types.YX{Y: h, X: w}, domain.TerrainUnknown)
}

func TestTileGenerator_Deterministic(t *testing.T) {
	gen := TileGenerator(42)

	a, b := newTile(16, 16), newTile(16, 16)
	gen(types.YX{Y: 1, X: -2}, a)
	gen(types.YX{Y: 1, X: -2}, b)
	assert.Equal(t, a.Terrain(), b.Terrain())

	other := newTile(16, 16)
	gen(types.YX{Y: 0, X: 0}, other)
	assert.NotEqual(t, a.Terrain(), other.Terrain())

	// Неизвестных клеток не остается
	assert.NotContains(t, a.Terrain(), string(domain.TerrainUnknown))
}

func TestTileGenerator_TinyTile(t *testing.T) {
	m := newTile(1, 1)
	TileGenerator(7)(types.YX{}, m)
	assert.Contains(t, []string{".", "x"}, m.Terrain())
}

func TestTileBuilder_Ruins(t *testing.T) {
	m := newTile(12, 12)
	b := NewTile(m, rand.New(rand.NewSource(3))).
		Scatter([]rune{domain.TerrainFloor}).
		WithRuins(3)

	if assert.NotEmpty(t, b.Ruins()) {
		r := b.Ruins()[0]
		corner := m.At(types.YX{Y: r.Y, X: r.X})
		assert.Equal(t, domain.TerrainWall, corner)
		inside := m.At(types.YX{Y: r.Y + 1, X: r.X + 1})
		assert.Equal(t, domain.TerrainFloor, inside)
	}
	for i, r := range b.Ruins() {
		for _, other := range b.Ruins()[i+1:] {
			assert.False(t, r.Intersects(other))
		}
	}
	// Стены на месте
	assert.True(t, strings.Contains(m.Terrain(), "#"))
}

// Тест вспомогательной функции пересечения руин
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	assert.True(t, r1.Intersects(r2))
	assert.False(t, r1.Intersects(r3))
}
