package engine

import (
	"sort"
	"strings"

	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers/actions"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers/admin"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
	"github.com/plomlompom/plomrogue2-experiments/internal/world"
)

// Command - запись реестра: сигнатура аргументов и хендлер.
type Command struct {
	Name      string
	Signature string
	Handler   handlers.HandlerFunc
	// DontSave - команда не меняет мир и не пишется в журнал.
	DontSave bool
}

// Наборы значений для string:<kind>
const (
	optionDirection = "direction"
	optionThingType = "thingtype"
)

func (s *GameService) registerHandlers() {
	s.register(Command{Name: "GEN_WORLD", Signature: sig(protocol.TypeYXPos, protocol.TypeString), Handler: admin.HandleGenWorld})
	s.register(Command{Name: "SEED", Signature: protocol.TypeString, Handler: admin.HandleSeed})
	s.register(Command{Name: "MAP_SIZE", Signature: protocol.TypeYXPos, Handler: admin.HandleMapSize})
	s.register(Command{Name: "MAP", Signature: protocol.TypeYX, Handler: admin.HandleMap})
	s.register(Command{Name: "TERRAIN_LINE", Signature: sig(protocol.TypeYX, protocol.TypeIntNonneg, protocol.TypeString), Handler: admin.HandleTerrainLine})
	s.register(Command{Name: "TURN", Signature: protocol.TypeIntNonneg, Handler: admin.HandleTurn})
	s.register(Command{Name: "PLAYER_ID", Signature: protocol.TypeIntNonneg, Handler: admin.HandlePlayerID})

	s.register(Command{Name: "THING_TYPE", Signature: sig(protocol.TypeIntNonneg, "string:"+optionThingType), Handler: admin.HandleThingType})
	s.register(Command{Name: "THING_POS", Signature: sig(protocol.TypeIntNonneg, protocol.TypeYX, protocol.TypeYXNonneg), Handler: admin.HandleThingPos})
	s.register(Command{Name: "THING_HEALTH", Signature: sig(protocol.TypeIntNonneg, protocol.TypeIntNonneg), Handler: admin.HandleThingHealth})
	s.register(Command{Name: "THING_INVENTORY", Signature: sig(protocol.TypeIntNonneg, protocol.TypeSeqIntNonneg), Handler: admin.HandleThingInventory})

	s.register(Command{Name: "SWITCH_PLAYER", Handler: handlers.WithPlayer(actions.HandleSwitchPlayer)})
	s.register(Command{Name: "GET_GAMESTATE", Handler: actions.HandleGetGamestate, DontSave: true})
	s.register(Command{Name: "GET_PICKABLE_ITEMS", Handler: handlers.WithPlayer(actions.HandleGetPickableItems), DontSave: true})
	s.register(Command{Name: "SAVE", Handler: admin.HandleSave, DontSave: true})

	// TASK:<NAME> и SET_TASK:<NAME> для каждой задачи
	for _, name := range world.TaskNames() {
		spec, _ := world.LookupTask(name)
		argSig := spec.Arg.Signature()
		s.register(Command{Name: "TASK:" + name, Signature: argSig, Handler: actions.HandleTask(spec)})
		s.register(Command{
			Name:      "SET_TASK:" + name,
			Signature: sig(protocol.TypeIntNonneg, protocol.TypeIntNonneg, argSig),
			Handler:   admin.HandleSetTask(spec),
		})
	}
}

func (s *GameService) register(cmd Command) {
	s.commands[cmd.Name] = cmd
}

// Command находит команду по имени.
func (s *GameService) Command(name string) (Command, bool) {
	cmd, ok := s.commands[name]
	return cmd, ok
}

// Commands - реестр команд, отсортированный по имени.
// Реестр не меняется после NewService, поэтому читать можно из любой горутины.
func (s *GameService) Commands() []Command {
	out := make([]Command, 0, len(s.commands))
	for _, cmd := range s.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// stringOptions отдает наборы для string:direction и string:thingtype.
func (s *GameService) stringOptions(kind string) ([]string, bool) {
	switch kind {
	case optionDirection:
		return s.directions, true
	case optionThingType:
		return s.thingTypes, true
	}
	return nil, false
}

func sig(types ...string) string {
	return strings.TrimSpace(strings.Join(types, " "))
}
