package actions

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// HandleSwitchPlayer отдает управление следующей вещи реестра.
func HandleSwitchPlayer(ctx handlers.Context, _ *world.Thing) error {
	if err := ctx.World.SwitchPlayer(); err != nil {
		return err
	}
	return handlers.Proceed(ctx)
}
