package network

import (
	"sync"
	"time"
)

// Outbox - исходящая очередь одного соединения.
// Put не блокируется; Get ждет не дольше timeout, чтобы писатель
// мог периодически проверять, не пора ли завершаться.
type Outbox struct {
	mu     sync.Mutex
	queue  []string
	notify chan struct{}
	closed bool
}

func NewOutbox() *Outbox {
	return &Outbox{notify: make(chan struct{}, 1)}
}

// Put кладет сообщение в конец. После Close сообщения отбрасываются.
func (o *Outbox) Put(msg string) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.queue = append(o.queue, msg)
	o.mu.Unlock()

	select {
	case o.notify <- struct{}{}:
	default:
	}
}

// Get забирает первое сообщение.
// ok == false: за timeout ничего не пришло или очередь закрыта и пуста.
func (o *Outbox) Get(timeout time.Duration) (msg string, ok bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		o.mu.Lock()
		if len(o.queue) > 0 {
			msg = o.queue[0]
			o.queue[0] = ""
			o.queue = o.queue[1:]
			o.mu.Unlock()
			return msg, true
		}
		closed := o.closed
		o.mu.Unlock()
		if closed {
			return "", false
		}

		select {
		case <-o.notify:
		case <-timer.C:
			return "", false
		}
	}
}

// Close помечает очередь закрытой и будит ждущий Get.
func (o *Outbox) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	select {
	case o.notify <- struct{}{}:
	default:
	}
}

// Closed - очередь закрыта.
func (o *Outbox) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// Len - сколько сообщений ждет отправки.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}
