package admin

import (
	"slices"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers/actions"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// HandleThingType: THING_TYPE <id> <тип>
func HandleThingType(ctx handlers.Context) error {
	ctx.World.SetThingType(ctx.Args.Int(0), domain.ThingType(ctx.Args.Str(1)))
	return nil
}

// HandleThingPos: THING_POS <id> <тайл> <позиция в тайле>
func HandleThingPos(ctx handlers.Context) error {
	size := ctx.World.Maps.TileSize
	small := ctx.Args.YX(2)
	if size.Y > 0 && size.X > 0 && !size.Contains(small) {
		return types.ArgErrorf("position %s outside map tile of size %s", small, size)
	}
	t := ctx.World.GetOrCreateThing(ctx.Args.Int(0))
	t.SetPosition(types.Position{Big: ctx.Args.YX(1), Small: small})
	ensurePlayerTiles(ctx.World, t.ID)
	return nil
}

// ensurePlayerTiles создает тайлы под окном игрока, если сдвинулся он сам.
// Тайлы появляются только в командах журнала, так реплей дает тот же мир.
func ensurePlayerTiles(w *world.World, movedIDs ...int) {
	player := w.Player()
	if player == nil || !slices.Contains(movedIDs, player.ID) {
		return
	}
	w.EnsureTilesAround(player)
}

// HandleThingHealth: THING_HEALTH <id> <здоровье>
func HandleThingHealth(ctx handlers.Context) error {
	t := ctx.World.GetOrCreateThing(ctx.Args.Int(0))
	t.Health = ctx.Args.Int(1)
	return nil
}

// HandleThingInventory: THING_INVENTORY <id> <id,id,...|,>
// Предметы помечаются переносимыми и переезжают к носителю.
func HandleThingInventory(ctx handlers.Context) error {
	carrierID := ctx.Args.Int(0)
	ids := ctx.Args.Ints(1)
	if slices.Contains(ids, carrierID) {
		return types.ArgErrorf("thing of ID %d cannot carry itself", carrierID)
	}
	carrier := ctx.World.GetOrCreateThing(carrierID)
	carrier.Inventory = slices.Clone(ids)
	for _, id := range ids {
		item := ctx.World.GetOrCreateThing(id)
		item.InInventory = true
		item.SetPosition(carrier.Position)
	}
	ensurePlayerTiles(ctx.World, ids...)
	return nil
}

// HandleSetTask строит хендлер SET_TASK:<NAME> <id> <todo> [аргумент].
// Задача ставится без проверки: так снимок возвращает мир в точности.
func HandleSetTask(spec *world.TaskSpec) handlers.HandlerFunc {
	return func(ctx handlers.Context) error {
		t := ctx.World.GetThing(ctx.Args.Int(0))
		if t == nil {
			return types.ArgErrorf("No such Thing.")
		}
		return t.RestoreTask(spec.Name, actions.TaskArgs(spec, ctx.Args, 2), ctx.Args.Int(1))
	}
}
