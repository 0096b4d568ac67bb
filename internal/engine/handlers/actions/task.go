package actions

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// HandleTask строит хендлер TASK:<NAME>: задача ставится игроку,
// если она выполнима, и мир крутится до следующего решения игрока.
func HandleTask(spec *world.TaskSpec) handlers.HandlerFunc {
	return handlers.WithLivingPlayer(func(ctx handlers.Context, player *world.Thing) error {
		if err := player.SetTask(spec.Name, TaskArgs(spec, ctx.Args, 0)); err != nil {
			return err
		}
		return handlers.Proceed(ctx)
	})
}

// TaskArgs достает аргумент задачи из разобранных аргументов команды,
// начиная с позиции offset.
func TaskArgs(spec *world.TaskSpec, args protocol.Args, offset int) world.TaskArgs {
	switch spec.Arg {
	case world.ArgDirection:
		return world.TaskArgs{Direction: geometry.Direction(args.Str(offset))}
	case world.ArgThingID:
		return world.TaskArgs{ThingID: args.Int(offset)}
	}
	return world.TaskArgs{}
}
