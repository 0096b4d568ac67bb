package handlers

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// PlayerHandlerFunc - хендлер, которому нужна вещь игрока.
type PlayerHandlerFunc func(ctx Context, player *world.Thing) error

// WithPlayer находит игрока и передает его хендлеру.
// Если мира или игрока еще нет - GameError.
func WithPlayer(handler PlayerHandlerFunc) HandlerFunc {
	return func(ctx Context) error {
		player := ctx.World.Player()
		if player == nil {
			return types.GameErrorf("no player thing of ID %d", ctx.World.PlayerID)
		}
		return handler(ctx, player)
	}
}

// WithLivingPlayer как WithPlayer, но мертвый игрок и игрок-предмет
// получают отказ до любых изменений мира.
func WithLivingPlayer(handler PlayerHandlerFunc) HandlerFunc {
	return WithPlayer(func(ctx Context, player *world.Thing) error {
		if !ctx.World.PlayerIsAlive {
			return types.GameErrorf("You are dead.")
		}
		if !player.Animate() {
			return types.GameErrorf("player thing of ID %d (%s) cannot act", player.ID, player.Type)
		}
		return handler(ctx, player)
	})
}
