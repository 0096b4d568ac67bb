package handlers

import (
	"fmt"

	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// SnapshotLines сериализует мир командами протокола.
// Выполнение этих строк по порядку на пустом мире восстанавливает его.
//
// PLAYER_ID идет дважды: в начале, чтобы THING_POS игрока создавал тайлы
// вокруг настоящего игрока (они уже есть среди MAP), и в конце, когда
// известно здоровье игрока.
func SnapshotLines(w *world.World) []string {
	lines := []string{
		protocol.Message("TURN", w.Turn),
		protocol.Message("SEED", protocol.Quote(w.Seed)),
		protocol.Message("MAP_SIZE", w.Maps.TileSize),
		protocol.Message("PLAYER_ID", w.PlayerID),
	}

	keys := w.Maps.Keys()
	for _, big := range keys {
		lines = append(lines, protocol.Message("MAP", big))
	}
	for _, big := range keys {
		for y, line := range w.Maps.GetMap(big, false).Lines() {
			lines = append(lines, fmt.Sprintf("TERRAIN_LINE %s %5d %s", big, y, protocol.Quote(line)))
		}
	}

	for _, t := range w.Things() {
		// безтиповую вещь нечем восстановить
		if t.Type == domain.ThingUnknown {
			continue
		}
		lines = append(lines,
			protocol.Message("THING_TYPE", t.ID, t.Type),
			protocol.Message("THING_POS", t.ID, t.Position.Big, t.Position.Small))
		if t.Animate() {
			lines = append(lines, protocol.Message("THING_HEALTH", t.ID, t.Health))
		}
		lines = append(lines, protocol.Message("THING_INVENTORY", t.ID, protocol.FormatSeq(t.Inventory)))
		if t.Task != nil {
			line := protocol.Message("SET_TASK:"+t.Task.Name(), t.ID, t.Task.Todo)
			if args := t.Task.ArgsString(protocol.Quote); args != "" {
				line += " " + args
			}
			lines = append(lines, line)
		}
	}

	return append(lines, protocol.Message("PLAYER_ID", w.PlayerID))
}
