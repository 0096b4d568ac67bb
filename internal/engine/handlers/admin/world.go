package admin

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
)

// HandleGenWorld: GEN_WORLD <размер тайла> <сид>
func HandleGenWorld(ctx handlers.Context) error {
	return ctx.World.MakeNew(ctx.Args.YX(0), ctx.Args.Str(1))
}

// HandleSeed: SEED <сид>
func HandleSeed(ctx handlers.Context) error {
	ctx.World.SetSeed(ctx.Args.Str(0))
	return nil
}

// HandleMapSize: MAP_SIZE <размер тайла>.
// Пока тайлов нет, размер свободно меняется; потом только подтверждается.
func HandleMapSize(ctx handlers.Context) error {
	size := ctx.Args.YX(0)
	maps := ctx.World.Maps
	if maps.Len() > 0 && maps.TileSize != size {
		return types.GameErrorf("map size is %s, cannot change to %s once tiles exist", maps.TileSize, size)
	}
	maps.TileSize = size
	return nil
}

// HandleMap: MAP <координата тайла> - создает тайл, если его нет.
func HandleMap(ctx handlers.Context) error {
	maps := ctx.World.Maps
	if maps.TileSize.Y <= 0 || maps.TileSize.X <= 0 {
		return types.GameErrorf("map size not set")
	}
	maps.GetMap(ctx.Args.YX(0), true)
	return nil
}

// HandleTerrainLine: TERRAIN_LINE <тайл> <строка> <рельеф>
func HandleTerrainLine(ctx handlers.Context) error {
	big := ctx.Args.YX(0)
	m := ctx.World.Maps.GetMap(big, false)
	if m == nil {
		return types.GameErrorf("no map at %s", big)
	}
	if err := m.SetLine(ctx.Args.Int(1), ctx.Args.Str(2)); err != nil {
		return err
	}
	for _, t := range ctx.World.Things() {
		t.UnsetSurroundings()
	}
	return nil
}

// HandleTurn: TURN <n>
func HandleTurn(ctx handlers.Context) error {
	ctx.World.Turn = ctx.Args.Int(0)
	return nil
}

// HandlePlayerID: PLAYER_ID <id>. Мертвая вещь становится мертвым игроком.
func HandlePlayerID(ctx handlers.Context) error {
	w := ctx.World
	w.PlayerID = ctx.Args.Int(0)
	w.PlayerIsAlive = true
	t := w.Player()
	if t == nil {
		return nil
	}
	if t.Animate() && t.Health <= 0 {
		w.PlayerIsAlive = false
	}
	w.EnsureTilesAround(t)
	return nil
}
