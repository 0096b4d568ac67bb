package server

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plomlompom/plomrogue2-experiments/internal/network"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Служебные ответы соединения, не доходящие до игры
const (
	MsgBadMessage = "BAD MESSAGE"
	MsgBye        = "BYE"
	CmdQuit       = "QUIT"
)

// Как часто писатель просыпается без сообщений
const outboxPoll = time.Second

// Transport - поток байт с '$'-кадрами в одну сторону и целыми
// сообщениями в другую.
type Transport interface {
	io.Reader
	WriteFrame(msg string) error
	Close() error
}

// pinger - транспорт, которому нужен keepalive.
type pinger interface {
	Ping() error
	PingPeriod() time.Duration
}

// Session - посредник между соединением и игровым циклом.
type Session struct {
	ID     uuid.UUID
	Out    *network.Outbox
	inbox  network.Inbox
	conn   Transport
	remote string

	closeOnce sync.Once
	log       *logrus.Entry
}

func NewSession(inbox network.Inbox, conn Transport, remote string) *Session {
	id := uuid.New()
	return &Session{
		ID:     id,
		Out:    network.NewOutbox(),
		inbox:  inbox,
		conn:   conn,
		remote: remote,
		log: logger.Component("session").WithFields(logrus.Fields{
			"conn":   id,
			"remote": remote,
		}),
	}
}

// Serve регистрирует очередь в игре и крутит оба насоса до закрытия
// соединения. Возвращается, когда оба насоса остановились.
func (s *Session) Serve(ctx context.Context) {
	if !s.send(ctx, network.Envelope{Kind: network.KindAdd, ConnID: s.ID, Outbox: s.Out}) {
		s.close()
		return
	}
	s.log.Info("Client connected")

	done := make(chan struct{})
	go func() {
		s.writePump(ctx)
		close(done)
	}()
	s.readPump(ctx)
	<-done
	s.log.Info("Client disconnected")
}

// readPump читает кадры и передает команды в игровой цикл.
func (s *Session) readPump(ctx context.Context) {
	// Игра закроет очередь; писатель допишет остаток и закроет соединение
	var farewell string
	defer func() {
		if !s.send(ctx, network.Envelope{Kind: network.KindKill, ConnID: s.ID, Command: farewell}) {
			s.Out.Close()
		}
	}()

	r := protocol.NewReader(s.conn)
	for {
		msg, err := r.Next()
		if errors.Is(err, protocol.ErrMalformed) {
			s.log.Debug("Malformed frame")
			s.Out.Put(MsgBadMessage)
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.WithError(err).Debug("Read failed")
			}
			return
		}
		if msg == CmdQuit {
			// BYE идет через игровой цикл, после ответов на прежние команды
			farewell = MsgBye
			return
		}
		if !s.send(ctx, network.Envelope{Kind: network.KindCommand, ConnID: s.ID, Command: msg}) {
			return
		}
	}
}

// writePump пишет очередь в соединение до ее закрытия и опустошения.
func (s *Session) writePump(ctx context.Context) {
	defer s.close()

	p, needsPing := s.conn.(pinger)
	lastPing := time.Now()

	for {
		msg, ok := s.Out.Get(outboxPoll)
		if ok {
			if err := s.conn.WriteFrame(msg); err != nil {
				s.log.WithError(err).Debug("Write failed")
				return
			}
			continue
		}
		if s.Out.Closed() {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if needsPing && time.Since(lastPing) >= p.PingPeriod() {
			if err := p.Ping(); err != nil {
				s.log.WithError(err).Debug("Ping failed")
				return
			}
			lastPing = time.Now()
		}
	}
}

// send кладет конверт в Inbox, если игра еще работает.
func (s *Session) send(ctx context.Context, env network.Envelope) bool {
	select {
	case s.inbox <- env:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.log.WithError(err).Debug("Close failed")
		}
	})
}
