package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/server"
	"github.com/plomlompom/plomrogue2-experiments/internal/systems"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Bot — "игрок-компьютер" (headless agent).
//
// Это ВНЕШНИЙ клиент: он подключается к серверу так же, как человек,
// видит только присланное состояние и отвечает командами TASK:*.
//
// Жизненный цикл:
//  1. Run шлет GET_GAMESTATE и читает сообщения сервера в View.
//  2. На GAME_STATE_COMPLETE вызывается Decide, команда уходит серверу.
//  3. После MaxTurns решений или смерти игрока бот шлет QUIT и ждет BYE.
type Bot struct {
	PlayerID int
	// MaxTurns — сколько решений принять до выхода; 0 — без ограничения.
	MaxTurns int
	// OnState вызывается на каждое целое состояние (например, для отрисовки).
	OnState func(v *View)

	View *View

	conn      io.ReadWriter
	decisions int
	// failed — сервер отверг прошлую команду; следующий ход — WAIT
	failed bool
	log    *logrus.Entry
}

func NewBot(conn io.ReadWriter, g geometry.Geometry, playerID int) *Bot {
	return &Bot{
		PlayerID: playerID,
		View:     NewView(g),
		conn:     conn,
		log:      logger.Component("bot").WithField("player", playerID),
	}
}

// Decisions — сколько команд бот уже отправил.
func (b *Bot) Decisions() int { return b.decisions }

// Run играет, пока сервер не попрощается или не закроет соединение.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.send("GET_GAMESTATE"); err != nil {
		return err
	}

	r := protocol.NewReader(b.conn)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg, err := r.Next()
		if errors.Is(err, protocol.ErrMalformed) {
			b.log.Warn("Malformed message from server")
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		done, err := b.handle(msg)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handle обрабатывает одно сообщение сервера. true — сессия окончена.
func (b *Bot) handle(msg string) (bool, error) {
	if msg == server.MsgBye {
		b.log.WithField("decisions", b.decisions).Info("Server said bye")
		return true, nil
	}
	if isError(msg) {
		if b.failed {
			return true, fmt.Errorf("server rejected retry too: %s", msg)
		}
		b.log.WithField("reply", msg).Debug("Command rejected")
		b.failed = true
		// Ошибку не сопровождает новое состояние, просим его сами
		return false, b.send("GET_GAMESTATE")
	}

	handled, err := b.View.Apply(msg)
	if err != nil {
		b.log.WithError(err).WithField("msg", msg).Warn("Bad server message")
		return false, nil
	}
	if !handled {
		b.log.WithField("msg", msg).Debug("Unhandled input")
		return false, nil
	}
	if !b.View.Complete {
		return false, nil
	}
	b.View.Complete = false

	if b.OnState != nil {
		b.OnState(b.View)
	}
	return false, b.act()
}

// act выбирает и отправляет следующую команду.
func (b *Bot) act() error {
	me := b.View.Things[b.PlayerID]
	if (me != nil && me.Health <= 0 && domain.KindOf(me.Type).Animate) ||
		(b.MaxTurns > 0 && b.decisions >= b.MaxTurns) {
		return b.send(server.CmdQuit)
	}

	cmd := "TASK:" + world.TaskWait
	if !b.failed {
		cmd = b.Decide()
	}
	b.failed = false
	b.decisions++
	b.log.WithFields(logrus.Fields{"turn": b.View.Turn, "command": cmd}).Debug("Decided")
	return b.send(cmd)
}

// Decide — мозг бота, та же логика, что у ИИ сервера, но по View:
// съесть еду из инвентаря, подобрать еду рядом, идти к видимой еде,
// иначе исследовать край видимого, иначе ждать.
func (b *Bot) Decide() string {
	v := b.View
	wait := "TASK:" + world.TaskWait
	me := v.Things[b.PlayerID]
	if me == nil {
		return wait
	}

	// 1. Еда в инвентаре
	for _, id := range v.Inventory {
		if t := v.Things[id]; t != nil && t.Type == domain.ThingFood {
			return protocol.Message("TASK:"+world.TaskEat, id)
		}
	}

	// 2. Еда на своей или соседней клетке
	neighbors := v.Map.Neighbors(me.Pos)
	for _, t := range v.ThingsAt(me.Pos) {
		if t.Type == domain.ThingFood {
			return protocol.Message("TASK:"+world.TaskPickup, t.ID)
		}
	}
	for _, n := range neighbors {
		if !n.InBounds {
			continue
		}
		for _, t := range v.ThingsAt(n.Pos) {
			if t.Type == domain.ThingFood {
				return protocol.Message("TASK:"+world.TaskPickup, t.ID)
			}
		}
	}

	// 3. Путь к видимой еде
	var food []types.YX
	for _, id := range v.ids() {
		if t := v.Things[id]; t.Type == domain.ThingFood && !v.Carried(id) {
			food = append(food, t.Pos)
		}
	}
	if dir, ok := systems.NextStepTowards(v.Map, me.Pos, food); ok && b.free(me.Pos, dir) {
		return protocol.Message("TASK:"+world.TaskMove, dir)
	}

	// 4. Край обзора: пол рядом с невидимым
	if dir, ok := systems.NextStepTowards(v.Map, me.Pos, b.frontier(me.Pos)); ok && b.free(me.Pos, dir) {
		return protocol.Message("TASK:"+world.TaskMove, dir)
	}
	return wait
}

// frontier — клетки пола, у которых есть сосед вне окна или за пределом видимого.
func (b *Bot) frontier(own types.YX) []types.YX {
	m := b.View.Map
	var out []types.YX
	for pos := range m.Positions() {
		if pos == own || m.At(pos) != domain.TerrainFloor {
			continue
		}
		for _, n := range m.Neighbors(pos) {
			if !n.InBounds || m.At(n.Pos) == domain.TerrainUnknown || m.At(n.Pos) == domain.TerrainBlank {
				out = append(out, pos)
				break
			}
		}
	}
	return out
}

// free — шаг не упирается в видимую блокирующую вещь.
func (b *Bot) free(from types.YX, dir geometry.Direction) bool {
	to, ok := b.View.Map.Move(from, dir)
	if !ok {
		return false
	}
	for _, t := range b.View.ThingsAt(to) {
		if domain.KindOf(t.Type).Blocking {
			return false
		}
	}
	return true
}

func (b *Bot) send(cmd string) error {
	_, err := b.conn.Write(protocol.Frame(cmd))
	return err
}

func isError(msg string) bool {
	for _, prefix := range []string{engine.MsgGameError, engine.MsgArgumentError, engine.MsgUnhandledInput, server.MsgBadMessage} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
