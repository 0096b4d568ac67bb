package admin

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
)

// HandleSave пишет снимок мира. В журнал команда не попадает.
func HandleSave(ctx handlers.Context) error {
	if ctx.Snapshots == nil {
		return types.GameErrorf("saving is not configured")
	}
	return ctx.Snapshots.WriteSnapshot(ctx.World.Turn, handlers.SnapshotLines(ctx.World))
}
