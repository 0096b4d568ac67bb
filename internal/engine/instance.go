package engine

import (
	"context"
	"time"

	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/network"
	"github.com/sirupsen/logrus"
)

// Run - игровой цикл. Единственная горутина, которая трогает мир.
//
// Команды исполняются строго по одной в порядке прихода в Inbox:
// все ходы ИИ и рассылки одной команды заканчиваются до чтения следующей.
// Автосохранение выполняется между командами.
func (s *GameService) Run(ctx context.Context) {
	s.log.Info("Game loop started")

	var autosave <-chan time.Time
	if s.Config.AutosaveEvery > 0 {
		ticker := time.NewTicker(s.Config.AutosaveEvery)
		defer ticker.Stop()
		autosave = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			if s.Config.AutosaveEvery > 0 {
				s.autosave()
			}
			s.log.Info("Game loop stopped")
			return

		case env := <-s.Inbox:
			s.dispatch(env)

		case <-autosave:
			s.autosave()
		}
	}
}

// dispatch обрабатывает одно сообщение из Inbox.
func (s *GameService) dispatch(env network.Envelope) {
	entry := s.log.WithFields(logrus.Fields{"conn": env.ConnID, "kind": env.Kind})
	switch env.Kind {
	case network.KindAdd:
		s.Hub.Register(env.ConnID, env.Outbox)
		entry.WithField("connections", s.Hub.SubscriberCount()).Info("Connection registered")
	case network.KindKill:
		if env.Command != "" {
			s.Hub.SendTo(env.ConnID, env.Command)
		}
		s.Hub.Unregister(env.ConnID)
		entry.WithField("connections", s.Hub.SubscriberCount()).Info("Connection removed")
	case network.KindCommand:
		entry.WithField("input", env.Command).Debug("Command received")
		s.HandleInput(env.Command, env.ConnID, true)
	default:
		entry.Warn("Unknown envelope kind")
	}
}

func (s *GameService) autosave() {
	if s.World.Player() == nil {
		return
	}
	// ошибка уже залогирована в WriteSnapshot
	_ = s.WriteSnapshot(s.World.Turn, handlers.SnapshotLines(s.World))
}
