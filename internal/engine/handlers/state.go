package handlers

import (
	"fmt"
	"strconv"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// Сообщения сервера клиенту
const (
	MsgTurn             = "TURN"
	MsgMap              = "MAP"
	MsgVisibleMapLine   = "VISIBLE_MAP_LINE"
	MsgThingType        = "THING_TYPE"
	MsgThingPos         = "THING_POS"
	MsgThingHealth      = "THING_HEALTH"
	MsgPlayerInventory  = "PLAYER_INVENTORY"
	MsgPickableItems    = "PICKABLE_ITEMS"
	MsgGameStateDone    = "GAME_STATE_COMPLETE"
	MsgTurnFinished     = "TURN_FINISHED"
	MsgLastPlayerResult = "LAST_PLAYER_TASK_RESULT"
)

// GamestateLines собирает то, что видит игрок: ход, окно обзора,
// видимые вещи (в координатах окна) и инвентарь.
// Мир не меняется: GET_GAMESTATE не пишется в журнал, поэтому
// недостающие тайлы здесь не создаются и читаются как '?'.
func GamestateLines(w *world.World) ([]string, error) {
	player := w.Player()
	if player == nil {
		return nil, types.GameErrorf("no player thing of ID %d", w.PlayerID)
	}

	// 1. Свежий обзор
	player.UnsetSurroundings()

	lines := []string{protocol.Message(MsgTurn, w.Turn)}

	// 2. Видимая карта
	visible := player.VisibleMap()
	lines = append(lines, protocol.Message(MsgMap, visible.Size))
	for y, line := range visible.Lines() {
		lines = append(lines, fmt.Sprintf("%s %5d %s", MsgVisibleMapLine, y, protocol.Quote(line)))
	}

	// 3. Видимые вещи
	for _, t := range player.VisibleThings() {
		lines = append(lines,
			protocol.Message(MsgThingType, t.ID, t.Type),
			protocol.Message(MsgThingPos, t.ID, player.WindowPos(t.Position)))
		if t.Animate() {
			lines = append(lines, protocol.Message(MsgThingHealth, t.ID, t.Health))
		}
	}

	// 4. Инвентарь
	lines = append(lines, protocol.Message(MsgPlayerInventory, protocol.FormatSeq(player.Inventory)))
	for _, id := range player.Inventory {
		item := w.GetThing(id)
		if item == nil {
			continue
		}
		lines = append(lines,
			protocol.Message(MsgThingType, item.ID, item.Type),
			protocol.Message(MsgThingPos, item.ID, player.WindowPos(item.Position)))
	}

	return append(lines, MsgGameStateDone), nil
}

// SendGamestate отправляет состояние через send (Reply или Broadcast).
func SendGamestate(w *world.World, send func(string)) error {
	lines, err := GamestateLines(w)
	if err != nil {
		return err
	}
	for _, line := range lines {
		send(line)
	}
	return nil
}

// Proceed объявляет конец хода, крутит мир до следующего решения игрока
// и рассылает всем результат и новое состояние.
func Proceed(ctx Context) error {
	w := ctx.World
	ctx.Out.Broadcast(protocol.Message(MsgTurnFinished, strconv.Itoa(w.Turn)))
	if err := w.ProceedToNextPlayerTurn(); err != nil {
		return err
	}
	result := ""
	if player := w.Player(); player != nil {
		result = player.LastTaskResult
	}
	ctx.Out.Broadcast(MsgLastPlayerResult + " " + protocol.Quote(result))
	return SendGamestate(w, ctx.Out.Broadcast)
}
