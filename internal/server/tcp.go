package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/plomlompom/plomrogue2-experiments/internal/network"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Таймаут записи одного кадра
const writeWait = 10 * time.Second

// tcpConn - кадры '$' поверх net.Conn.
type tcpConn struct {
	net.Conn
}

func (c tcpConn) WriteFrame(msg string) error {
	if err := c.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	_, err := c.Write(protocol.Frame(msg))
	return err
}

// TCPServer принимает соединения протокола и заводит на каждое Session.
type TCPServer struct {
	Addr  string
	inbox network.Inbox

	mu       sync.Mutex
	listener net.Listener
	sessions sync.WaitGroup
	log      *logrus.Entry
}

func NewTCPServer(addr string, inbox network.Inbox) *TCPServer {
	return &TCPServer{
		Addr:  addr,
		inbox: inbox,
		log:   logger.Component("tcp"),
	}
}

// Listen занимает порт. После него ListenAddr знает реальный адрес (":0").
func (s *TCPServer) Listen() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// ListenAddr - адрес, на котором реально слушает сервер.
func (s *TCPServer) ListenAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve принимает соединения до отмены ctx, затем ждет завершения сессий.
func (s *TCPServer) Serve(ctx context.Context) error {
	if s.ListenAddr() == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	ln := s.listener

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.log.WithField("addr", ln.Addr().String()).Info("Protocol server listening")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.log.WithError(err).Warn("Accept failed")
			continue
		}
		sess := NewSession(s.inbox, tcpConn{conn}, conn.RemoteAddr().String())
		s.sessions.Add(1)
		go func() {
			defer s.sessions.Done()
			sess.Serve(ctx)
		}()
	}

	s.sessions.Wait()
	s.log.Info("Protocol server stopped")
	return nil
}
