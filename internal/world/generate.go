package world

import (
	"math/rand"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Население нового мира, в порядке создания. Первый human - игрок.
var newWorldPopulation = []domain.ThingType{
	domain.ThingHuman,
	domain.ThingMonster,
	domain.ThingMonster,
	domain.ThingFood,
	domain.ThingFood,
	domain.ThingFood,
	domain.ThingFood,
}

// Сколько раз пытаться найти свободный пол для вещи.
const maxPlacementAttempts = 10000

// MakeNew пересоздает мир: тайлы размера tileSize, сид seed,
// тайл (0,0) и вещи на свободном полу в нем.
// Одинаковые tileSize и seed дают одинаковый мир.
//
// Новый мир строится отдельно и подменяет старый только целиком:
// при ошибке старый мир остается как был.
func (w *World) MakeNew(tileSize types.YX, seed string) error {
	if tileSize.Y <= 0 || tileSize.X <= 0 {
		return types.ArgErrorf("tile size must be positive, got %s", tileSize)
	}
	staged := New(w.Geometry(), tileSize, w.Radius)
	staged.TaskTodo = w.TaskTodo
	staged.log = w.log
	staged.SetSeed(seed)

	rng := rand.New(rand.NewSource(utils.SeedFromString(seed)))
	origin := staged.Maps.GetMap(types.YX{}, true)

	var player *Thing
	for _, typ := range newWorldPopulation {
		pos, ok := staged.freeFloor(origin, rng)
		if !ok {
			return types.GameErrorf("no free floor left for %s", typ)
		}
		t := staged.AddThing(typ, types.Position{Small: pos})
		if player == nil && typ == domain.ThingHuman {
			player = t
		}
	}
	staged.PlayerID = player.ID
	staged.EnsureTilesAround(player)

	w.commit(staged)
	w.log.WithFields(logrus.Fields{
		"tile_size": tileSize,
		"seed":      seed,
		"things":    len(w.things),
		"tiles":     w.Maps.Len(),
	}).Info("World generated.")
	return nil
}

// commit переносит в w состояние собранного мира staged.
func (w *World) commit(staged *World) {
	for _, t := range w.things {
		t.removed = true
	}
	w.Turn = staged.Turn
	w.PlayerID = staged.PlayerID
	w.PlayerIsAlive = staged.PlayerIsAlive
	w.Seed = staged.Seed
	w.Maps = staged.Maps
	w.things = staged.things
	for _, t := range w.things {
		t.world = w
		t.UnsetSurroundings()
	}
}

func (w *World) freeFloor(m *domain.Map, rng *rand.Rand) (types.YX, bool) {
	for i := 0; i < maxPlacementAttempts; i++ {
		pos := types.YX{Y: rng.Intn(m.Size.Y), X: rng.Intn(m.Size.X)}
		if m.At(pos) != domain.TerrainFloor {
			continue
		}
		if len(w.ThingsAt(types.Position{Small: pos})) > 0 {
			continue
		}
		return pos, true
	}
	return types.YX{}, false
}
