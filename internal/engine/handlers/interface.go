package handlers

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// Output - куда хендлер пишет ответы.
type Output interface {
	// Reply отправляет сообщение только тому, кто прислал команду.
	Reply(msg string)
	// Broadcast отправляет сообщение всем подключенным клиентам.
	Broadcast(msg string)
}

// Snapshotter сохраняет снимок мира (SAVE, автосохранение).
type Snapshotter interface {
	WriteSnapshot(turn int, lines []string) error
}

// Context передает хендлеру состояние мира и разобранные аргументы.
// Мир передается по ссылке: хендлер его мутирует.
type Context struct {
	World     *world.World
	Args      protocol.Args
	Out       Output
	Snapshots Snapshotter
}

// HandlerFunc - контракт любой команды (TASK:MOVE, THING_POS, ...).
// ArgumentError и GameError превращаются движком в ответ клиенту.
type HandlerFunc func(ctx Context) error
