package world

import (
	"slices"
	"testing"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generated(t *testing.T, seed string) *World {
	t.Helper()
	w := New(geometry.Hex{}, types.YX{}, domain.DefaultViewRadius)
	require.NoError(t, w.MakeNew(types.YX{Y: 16, X: 16}, seed))
	return w
}

func TestMakeNew(t *testing.T) {
	w := generated(t, "bar")

	things := w.Things()
	require.Len(t, things, 7)
	assert.Equal(t, domain.ThingHuman, things[0].Type)
	assert.Equal(t, things[0].ID, w.PlayerID)
	assert.True(t, w.PlayerIsAlive)
	assert.Equal(t, 0, w.Turn)
	assert.Equal(t, "bar", w.Seed)

	counts := map[domain.ThingType]int{}
	seen := map[types.Position]bool{}
	for _, th := range things {
		counts[th.Type]++
		assert.False(t, seen[th.Position], "things start on distinct cells")
		seen[th.Position] = true
		assert.Equal(t, types.YX{}, th.Position.Big)
		assert.Equal(t, domain.TerrainFloor, w.Maps.Cell(th.Position))
	}
	assert.Equal(t, map[domain.ThingType]int{
		domain.ThingHuman:   1,
		domain.ThingMonster: 2,
		domain.ThingFood:    4,
	}, counts)

	// Окно обзора шире тайла, поэтому соседние тайлы уже созданы
	assert.Greater(t, w.Maps.Len(), 1)
}

func TestMakeNew_Deterministic(t *testing.T) {
	a := generated(t, "bar")
	b := generated(t, "bar")
	c := generated(t, "12345")

	for i := range a.Things() {
		assert.Equal(t, a.Things()[i].Position, b.Things()[i].Position)
	}
	origin := types.YX{}
	assert.Equal(t, a.Maps.GetMap(origin, false).Terrain(), b.Maps.GetMap(origin, false).Terrain())
	assert.Equal(t, a.Maps.Keys(), b.Maps.Keys())
	assert.NotEqual(t, a.Maps.GetMap(origin, false).Terrain(), c.Maps.GetMap(origin, false).Terrain())
}

func TestMakeNew_InvalidSize(t *testing.T) {
	w := New(geometry.Hex{}, types.YX{}, 8)
	var argErr *types.ArgumentError
	assert.ErrorAs(t, w.MakeNew(types.YX{Y: 0, X: 4}, "1"), &argErr)
}

func TestSurroundings_Window(t *testing.T) {
	w := openWorld(t)
	odd := w.AddThing(domain.ThingHuman, at(3, 3))
	even := w.AddThing(domain.ThingMonster, at(2, 2))

	// Радиус 4: для нечетной строки окно на строку выше
	assert.Equal(t, types.YX{Y: 10, X: 9}, odd.WindowSize())
	assert.Equal(t, types.YX{Y: -2, X: -1}, odd.SurroundingsOffset())
	assert.Equal(t, types.YX{Y: 9, X: 9}, even.WindowSize())
	assert.Equal(t, types.YX{Y: -2, X: -2}, even.SurroundingsOffset())

	m := odd.SurroundingMap()
	assert.Equal(t, odd.WindowSize(), m.Size)
	assert.Equal(t, domain.TerrainUnknown, m.At(types.YX{Y: 0, X: 0}), "missing tiles read as unknown")
	assert.Equal(t, domain.TerrainFloor, m.At(odd.WindowPos(odd.Position)))

	visible := odd.VisibleMap()
	assert.Equal(t, domain.TerrainFloor, visible.At(odd.WindowPos(odd.Position)))
	assert.Contains(t, odd.VisibleThings(), even)
}

func TestEnsureTilesAround(t *testing.T) {
	w := openWorld(t)
	player := w.AddThing(domain.ThingHuman, at(3, 3))
	require.Equal(t, 1, w.Maps.Len())

	w.EnsureTilesAround(player)

	// Окно 10x9 с углом (-2,-1) задевает тайлы по обе стороны от (0,0)
	for y := -1; y <= 1; y++ {
		for x := -1; x <= 1; x++ {
			assert.True(t, w.Maps.Has(types.YX{Y: y, X: x}), "tile %d,%d", y, x)
		}
	}
	assert.Equal(t, 9, w.Maps.Len())
}

func TestMakeNew_FailureKeepsWorld(t *testing.T) {
	w := generated(t, "bar")
	things := slices.Clone(w.Things())
	keys := w.Maps.Keys()
	maps := w.Maps
	player := w.PlayerID
	w.Turn = 5

	// 7 вещей не помещаются на 4 клетки
	err := w.MakeNew(types.YX{Y: 2, X: 2}, "1")
	var gameErr *types.GameError
	require.ErrorAs(t, err, &gameErr)

	assert.Equal(t, things, w.Things())
	assert.Same(t, maps, w.Maps)
	assert.Equal(t, keys, w.Maps.Keys())
	assert.Equal(t, types.YX{Y: 16, X: 16}, w.Maps.TileSize)
	assert.Equal(t, "bar", w.Seed)
	assert.Equal(t, player, w.PlayerID)
	assert.Equal(t, 5, w.Turn)
}

func TestMakeNew_ReplacesWorld(t *testing.T) {
	w := generated(t, "bar")
	old := w.Things()[0]
	w.Turn = 5

	require.NoError(t, w.MakeNew(types.YX{Y: 16, X: 16}, "12345"))
	assert.Equal(t, 0, w.Turn)
	assert.Equal(t, "12345", w.Seed)
	assert.True(t, old.removed, "things of the old world are gone")
	for _, th := range w.Things() {
		assert.Same(t, w, th.world)
	}
	// новые вещи живут в новом мире: ход проходит без ошибок
	require.NoError(t, w.Player().SetTask(TaskWait, TaskArgs{}))
	require.NoError(t, w.ProceedToNextPlayerTurn())
	assert.Positive(t, w.Turn)
}
