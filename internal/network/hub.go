package network

import (
	"sync"

	"github.com/google/uuid"
)

// Broadcaster занимается только рассылкой сообщений подписчикам.
//
// Добавляет и удаляет подписчиков игровой цикл (по KindAdd/KindKill),
// RWMutex нужен для чтения счетчика из HTTP-обработчиков.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ConnID -> очередь соединения
	subscribers map[uuid.UUID]*Outbox
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uuid.UUID]*Outbox),
	}
}

// Register привязывает очередь к соединению.
func (b *Broadcaster) Register(id uuid.UUID, out *Outbox) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если очередь была, закрываем
	if old, ok := b.subscribers[id]; ok && old != out {
		old.Close()
	}
	b.subscribers[id] = out
}

// Unregister удаляет подписчика и закрывает его очередь.
func (b *Broadcaster) Unregister(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if out, ok := b.subscribers[id]; ok {
		out.Close()
		delete(b.subscribers, id)
	}
}

// SendTo отправляет сообщение одному соединению (Unicast).
// Неизвестный id - сообщение теряется.
func (b *Broadcaster) SendTo(id uuid.UUID, msg string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out, ok := b.subscribers[id]
	if ok {
		out.Put(msg)
	}
	return ok
}

// Broadcast отправляет всем.
func (b *Broadcaster) Broadcast(msg string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, out := range b.subscribers {
		out.Put(msg)
	}
}

// HasSubscriber проверяет, подключено ли соединение.
func (b *Broadcaster) HasSubscriber(id uuid.UUID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
