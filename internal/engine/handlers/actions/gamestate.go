package actions

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// HandleGetGamestate отправляет состояние только спросившему.
func HandleGetGamestate(ctx handlers.Context) error {
	return handlers.SendGamestate(ctx.World, ctx.Out.Reply)
}

// HandleGetPickableItems отвечает id предметов, которые игрок может поднять.
func HandleGetPickableItems(ctx handlers.Context, player *world.Thing) error {
	ctx.Out.Reply(protocol.Message(handlers.MsgPickableItems, protocol.FormatSeq(player.PickableItems())))
	return nil
}
