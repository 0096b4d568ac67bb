package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/internal/infrastructure/storage"
	"github.com/plomlompom/plomrogue2-experiments/internal/network"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Ответы на ошибки разбора и исполнения
const (
	MsgUnhandledInput = "UNHANDLED_INPUT"
	MsgArgumentError  = "ARGUMENT_ERROR"
	MsgGameError      = "GAME_ERROR"
)

// GameService - игра: мир, реестр команд, журнал и снимки.
//
// Мир трогает только горутина Run (или вызывающий до ее запуска).
// Снаружи команды приходят через Inbox.
type GameService struct {
	Config Config
	World  *world.World
	Hub    *network.Broadcaster
	Inbox  network.Inbox

	commands   map[string]Command
	directions []string
	thingTypes []string

	cmdLog    *storage.CommandLog
	snapshots []storage.SnapshotStore

	log *logrus.Entry
}

// NewService создает игру с пустым миром. Журнал не читается: см. LoadGame.
func NewService(cfg Config) (*GameService, error) {
	geom, err := geometry.New(cfg.Geometry)
	if err != nil {
		return nil, err
	}
	w := world.New(geom, types.YX{}, cfg.ViewRadius)
	if cfg.TaskTodo > 0 {
		w.TaskTodo = cfg.TaskTodo
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = NewConfig().InboxSize
	}

	s := &GameService{
		Config:     cfg,
		World:      w,
		Hub:        network.NewBroadcaster(),
		Inbox:      network.NewInbox(cfg.InboxSize),
		commands:   make(map[string]Command),
		directions: geometry.DirectionNames(geom),
		thingTypes: domain.ThingTypeNames(),
		log:        logger.Component("engine"),
	}
	if cfg.GameFile != "" {
		s.cmdLog = storage.NewCommandLog(cfg.GameFile)
		s.snapshots = append(s.snapshots, storage.NewFileSnapshotStore(cfg.GameFile))
	}
	s.registerHandlers()
	return s, nil
}

// AddSnapshotStore подключает еще одно хранилище снимков (например, Postgres).
func (s *GameService) AddSnapshotStore(store storage.SnapshotStore) {
	s.snapshots = append(s.snapshots, store)
}

// Close закрывает хранилища снимков.
func (s *GameService) Close() error {
	var errs []error
	for _, store := range s.snapshots {
		errs = append(errs, store.Close())
	}
	return errors.Join(errs...)
}

// HandleInput - единственная граница исполнения команд.
//
// Разбирает строку, вызывает хендлер и превращает любые ошибки в ответ
// только отправителю. Успешная команда, меняющая мир, дописывается
// в журнал, если store. connID == uuid.Nil - команда от самого сервера
// (журнал, снимок), ответы уходят в лог.
func (s *GameService) HandleInput(input string, connID uuid.UUID, store bool) {
	out := &connOutput{s: s, conn: connID}

	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{"input": input, "panic": r}).Error("Command handler panicked")
			out.Reply(MsgGameError + " " + protocol.Quote(fmt.Sprintf("internal error: %v", r)))
		}
	}()

	cmd, args, err := s.parse(input)
	if err != nil {
		s.replyError(out, input, err)
		return
	}
	if cmd == nil {
		out.Reply(MsgUnhandledInput)
		return
	}

	ctx := handlers.Context{
		World:     s.World,
		Args:      args,
		Out:       out,
		Snapshots: s,
	}
	if err := cmd.Handler(ctx); err != nil {
		s.replyError(out, input, err)
		return
	}

	if store && !cmd.DontSave && s.cmdLog != nil {
		if err := s.cmdLog.Append(input); err != nil {
			s.log.WithError(err).Error("Failed to append to command log")
		}
	}
}

// parse находит команду и разбирает аргументы.
// nil без ошибки - команда неизвестна.
func (s *GameService) parse(input string) (*Command, protocol.Args, error) {
	tokens := protocol.Tokenize(input)
	if len(tokens) == 0 {
		return nil, nil, nil
	}
	cmd, ok := s.commands[tokens[0]]
	if !ok {
		return nil, nil, nil
	}
	if cmd.Signature == "" {
		if len(tokens) > 1 {
			return nil, nil, types.ArgErrorf("Command expects no argument(s).")
		}
		return &cmd, nil, nil
	}
	if len(tokens) == 1 {
		return nil, nil, types.ArgErrorf("Command expects argument(s).")
	}
	args, err := protocol.ArgsParse(cmd.Signature, tokens[1:], s.stringOptions)
	if err != nil {
		return nil, nil, err
	}
	return &cmd, args, nil
}

func (s *GameService) replyError(out handlers.Output, input string, err error) {
	var argErr *types.ArgumentError
	var gameErr *types.GameError
	switch {
	case errors.As(err, &argErr):
		out.Reply(MsgArgumentError + " " + protocol.Quote(argErr.Msg))
	case errors.As(err, &gameErr):
		out.Reply(MsgGameError + " " + protocol.Quote(gameErr.Msg))
	default:
		s.log.WithError(err).WithField("input", input).Error("Command failed")
		out.Reply(MsgGameError + " " + protocol.Quote(err.Error()))
	}
}

// WriteSnapshot отдает снимок всем хранилищам. Ошибка одного
// не мешает остальным.
func (s *GameService) WriteSnapshot(turn int, lines []string) error {
	if len(s.snapshots) == 0 {
		return types.GameErrorf("no game file to save to")
	}
	snap := storage.Snapshot{Turn: turn, Lines: lines, CreatedAt: time.Now()}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	for _, store := range s.snapshots {
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.log.WithError(err).Error("Snapshot failed")
		return err
	}
	s.log.WithFields(logrus.Fields{"turn": turn, "lines": len(lines)}).Info("Snapshot written")
	return nil
}

// connOutput направляет ответы хендлера в очереди соединений.
type connOutput struct {
	s    *GameService
	conn uuid.UUID
}

func (o *connOutput) Reply(msg string) {
	if o.conn == uuid.Nil {
		o.s.log.WithField("reply", msg).Info("Server-side command reply")
		return
	}
	o.s.Hub.SendTo(o.conn, msg)
}

func (o *connOutput) Broadcast(msg string) {
	o.s.Hub.Broadcast(msg)
}
