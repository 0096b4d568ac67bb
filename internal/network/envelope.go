package network

import "github.com/google/uuid"

// Kind - вид сообщения во входящей очереди игрового цикла.
type Kind int

const (
	// KindAdd - новое соединение, Outbox заполнен.
	KindAdd Kind = iota
	// KindKill - соединение закрыто, его очередь надо забыть.
	// Непустой Command отправляется в очередь последним сообщением.
	KindKill
	// KindCommand - строка команды от клиента.
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "ADD_QUEUE"
	case KindKill:
		return "KILL_QUEUE"
	case KindCommand:
		return "COMMAND"
	}
	return "UNKNOWN"
}

// Envelope - единица работы для игрового цикла.
type Envelope struct {
	Kind    Kind
	ConnID  uuid.UUID
	Outbox  *Outbox
	Command string
}

// Inbox - общая входящая очередь. Читает ее только игровой цикл.
type Inbox chan Envelope

// NewInbox создает очередь с буфером size.
func NewInbox(size int) Inbox {
	return make(Inbox, size)
}
