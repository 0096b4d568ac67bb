package engine

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoadGame восстанавливает игру из журнала.
//
// Если журнал есть, его строки исполняются заново без повторной записи.
// Если нет - исполняются initial (например, последний снимок из базы),
// а при их отсутствии Config.DefaultWorld; эти строки попадают в журнал.
func (s *GameService) LoadGame(initial []string) error {
	if s.cmdLog != nil && s.cmdLog.Exists() {
		lines, err := s.cmdLog.Lines()
		if err != nil {
			return err
		}
		for _, line := range lines {
			s.HandleInput(line, uuid.Nil, false)
		}
		s.log.WithFields(logrus.Fields{
			"file":     s.cmdLog.Path,
			"commands": len(lines),
			"turn":     s.World.Turn,
		}).Info("Game replayed from command log")
		return nil
	}

	if len(initial) == 0 {
		initial = []string{s.Config.DefaultWorld}
	}
	for _, line := range initial {
		s.HandleInput(line, uuid.Nil, true)
	}
	s.log.WithField("commands", len(initial)).Info("New game started")
	return nil
}
