package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleInput_ParseErrors(t *testing.T) {
	s := newTestService(t)
	id, out := connect(s)

	tests := []struct {
		input string
		want  string
	}{
		{"", "UNHANDLED_INPUT"},
		{"   ", "UNHANDLED_INPUT"},
		{"FLY UP", "UNHANDLED_INPUT"},
		{"task:move UP", "UNHANDLED_INPUT"},
		{"TURN", `ARGUMENT_ERROR "Command expects argument(s)."`},
		{"TURN -1", `ARGUMENT_ERROR "Argument must be non-negative integer."`},
		{"TURN 1 2", `ARGUMENT_ERROR "Number of arguments (2) not expected number (1)."`},
		{"GET_GAMESTATE now", `ARGUMENT_ERROR "Command expects no argument(s)."`},
		{"MAP_SIZE Y:0,X:5", `ARGUMENT_ERROR "Arg for Y position < 1."`},
		{"THING_TYPE 0 dragon", `ARGUMENT_ERROR "Argument #2 must be one of: food, human, monster"`},
		{"TASK:MOVE NORTH", `ARGUMENT_ERROR "Argument #1 must be one of: DOWNLEFT, DOWNRIGHT, LEFT, RIGHT, UPLEFT, UPRIGHT"`},
	}
	for _, tt := range tests {
		s.HandleInput(tt.input, id, true)
		assert.Equal(t, []string{tt.want}, drain(out), tt.input)
	}

	assert.False(t, s.cmdLog.Exists(), "failed commands are not logged")
}

func TestHandleInput_GameErrorWithoutWorld(t *testing.T) {
	s := newTestService(t)
	id, out := connect(s)

	s.HandleInput("GET_GAMESTATE", id, true)
	assert.Equal(t, []string{`GAME_ERROR "no player thing of ID 0"`}, drain(out))

	s.HandleInput("MAP Y:0,X:0", id, true)
	assert.Equal(t, []string{`GAME_ERROR "map size not set"`}, drain(out))
}

func TestTaskMove_OneActionOneTurn(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("TASK:MOVE RIGHT", id, true)
	msgs := drain(out)

	player := s.World.Player()
	assert.Equal(t, types.YX{Y: 2, X: 2}, player.Position.Small)
	assert.Nil(t, player.Task)
	assert.Equal(t, 1, s.World.Turn)

	require.GreaterOrEqual(t, len(msgs), 4)
	assert.Equal(t, "TURN_FINISHED 0", msgs[0])
	assert.Equal(t, `LAST_PLAYER_TASK_RESULT "success"`, msgs[1])
	assert.Equal(t, "TURN 1", msgs[2])
	assert.Equal(t, "MAP Y:5,X:5", msgs[3])
	assert.Equal(t, "GAME_STATE_COMPLETE", msgs[len(msgs)-1])
	assert.Contains(t, msgs, "THING_POS 0 Y:2,X:2")
	assert.Contains(t, msgs, "THING_HEALTH 0 99")
	assert.Contains(t, msgs, "PLAYER_INVENTORY ,")
}

func TestTaskMove_IntoWall(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("TASK:MOVE RIGHT", id, true)
	drain(out)

	s.HandleInput("TASK:MOVE RIGHT", id, true)
	assert.Equal(t, []string{`GAME_ERROR "0 would move into illegal terrain"`}, drain(out))
	assert.Equal(t, types.YX{Y: 2, X: 2}, s.World.Player().Position.Small)
	assert.Equal(t, 1, s.World.Turn)

	lines, err := s.cmdLog.Lines()
	require.NoError(t, err)
	assert.Equal(t, "TASK:MOVE RIGHT", lines[len(lines)-1])
	assert.Len(t, lines, len(testWorld)+1)
}

func TestErrorsArePrivate_StateIsBroadcast(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	alice, aliceOut := connect(s)
	_, bobOut := connect(s)

	s.HandleInput("TASK:EAT 1", alice, true)
	assert.Equal(t, []string{`GAME_ERROR "no thing of ID 1 in inventory"`}, drain(aliceOut))
	assert.Empty(t, drain(bobOut))

	s.HandleInput("TASK:WAIT", alice, true)
	aliceMsgs, bobMsgs := drain(aliceOut), drain(bobOut)
	assert.Equal(t, aliceMsgs, bobMsgs)
	assert.Equal(t, "TURN_FINISHED 0", bobMsgs[0])

	// GET_GAMESTATE отвечает только спросившему
	s.HandleInput("GET_GAMESTATE", alice, true)
	assert.Equal(t, "TURN 1", drain(aliceOut)[0])
	assert.Empty(t, drain(bobOut))
}

func TestPickupAndEat(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("GET_PICKABLE_ITEMS", id, true)
	assert.Equal(t, []string{"PICKABLE_ITEMS 1"}, drain(out))

	s.HandleInput("TASK:PICKUP 1", id, true)
	msgs := drain(out)
	assert.Contains(t, msgs, "PLAYER_INVENTORY 1")
	assert.Contains(t, msgs, "THING_TYPE 1 food")

	s.HandleInput("GET_PICKABLE_ITEMS", id, true)
	assert.Equal(t, []string{"PICKABLE_ITEMS ,"}, drain(out))

	s.HandleInput("TASK:EAT 1", id, true)
	msgs = drain(out)
	assert.Contains(t, msgs, "PLAYER_INVENTORY ,")
	assert.Nil(t, s.World.GetThing(1))
	assert.Equal(t, 148, s.World.Player().Health)
}

func TestDeadPlayer(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("THING_HEALTH 0 1", id, true)
	s.HandleInput("TASK:WAIT", id, true)
	drain(out)
	require.False(t, s.World.PlayerIsAlive)

	s.HandleInput("TASK:WAIT", id, true)
	assert.Equal(t, []string{`GAME_ERROR "You are dead."`}, drain(out))

	// состояние мертвому по-прежнему доступно
	s.HandleInput("GET_GAMESTATE", id, true)
	assert.Contains(t, drain(out), "THING_HEALTH 0 0")
}

func TestSetTask(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("SET_TASK:MOVE 9 2 RIGHT", id, true)
	assert.Equal(t, []string{`ARGUMENT_ERROR "No such Thing."`}, drain(out))

	// без проверки выполнимости: монстр упирается в край карты
	s.HandleInput("SET_TASK:MOVE 2 5 RIGHT", id, true)
	assert.Empty(t, drain(out))
	task := s.World.GetThing(2).Task
	require.NotNil(t, task)
	assert.Equal(t, "MOVE RIGHT (todo 5)", task.String())

	s.HandleInput("SET_TASK:WAIT 2 1", id, true)
	assert.Empty(t, drain(out))
	assert.Equal(t, "WAIT", s.World.GetThing(2).Task.Name())
}

func TestSwitchPlayer(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	// еда 1 пропускается: играть можно только живой вещью
	s.HandleInput("SWITCH_PLAYER", id, true)
	msgs := drain(out)
	assert.Equal(t, 2, s.World.PlayerID)
	assert.Equal(t, "TURN_FINISHED 0", msgs[0])
}

func TestSwitchPlayer_FromItem(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("PLAYER_ID 1", id, true)
	s.HandleInput("SWITCH_PLAYER", id, true)
	assert.NotContains(t, drain(out), "GAME_ERROR")
	assert.Equal(t, 2, s.World.PlayerID)
	assert.Nil(t, s.World.GetThing(1).Task)
}

func TestSwitchPlayer_FromDeadPlayer(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("THING_HEALTH 0 1", id, true)
	s.HandleInput("TASK:WAIT", id, true)
	drain(out)
	require.False(t, s.World.PlayerIsAlive)

	s.HandleInput("SWITCH_PLAYER", id, true)
	drain(out)
	assert.Equal(t, 2, s.World.PlayerID)
	assert.True(t, s.World.PlayerIsAlive)

	turn := s.World.Turn
	s.HandleInput("TASK:WAIT", id, true)
	assert.NotContains(t, drain(out), `GAME_ERROR "You are dead."`)
	assert.Greater(t, s.World.Turn, turn)
}

func TestTask_ItemPlayerCannotAct(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("PLAYER_ID 1", id, true)
	drain(out)
	turn := s.World.Turn

	done := make(chan []string, 1)
	go func() {
		s.HandleInput("TASK:WAIT", id, true)
		done <- drain(out)
	}()
	select {
	case msgs := <-done:
		assert.Equal(t, []string{`GAME_ERROR "player thing of ID 1 (food) cannot act"`}, msgs)
	case <-time.After(5 * time.Second):
		t.Fatal("TASK:WAIT for an item player did not return")
	}
	assert.Equal(t, turn, s.World.Turn)

	lines, err := s.cmdLog.Lines()
	require.NoError(t, err)
	assert.NotContains(t, lines, "TASK:WAIT")
}

func TestThingCommands(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("THING_POS 0 Y:0,X:0 Y:9,X:0", id, true)
	assert.Equal(t, []string{`ARGUMENT_ERROR "position Y:9,X:0 outside map tile of size Y:5,X:5"`}, drain(out))

	s.HandleInput("THING_INVENTORY 0 0", id, true)
	assert.Equal(t, []string{`ARGUMENT_ERROR "thing of ID 0 cannot carry itself"`}, drain(out))

	s.HandleInput("THING_INVENTORY 0 1", id, true)
	assert.Empty(t, drain(out))
	food := s.World.GetThing(1)
	assert.True(t, food.InInventory)
	assert.Equal(t, s.World.Player().Position, food.Position)

	// смена типа сохраняет позицию и флаг инвентаря
	s.HandleInput("THING_TYPE 1 monster", id, true)
	retyped := s.World.GetThing(1)
	assert.True(t, retyped.InInventory)
	assert.Equal(t, 50, retyped.Health)

	s.HandleInput("MAP_SIZE Y:7,X:7", id, true)
	assert.Equal(t, []string{`GAME_ERROR "map size is Y:5,X:5, cannot change to Y:7,X:7 once tiles exist"`}, drain(out))

	s.HandleInput("TERRAIN_LINE Y:3,X:3 0 ..", id, true)
	assert.Equal(t, []string{`GAME_ERROR "no map at Y:3,X:3"`}, drain(out))

	s.HandleInput("TERRAIN_LINE Y:0,X:0 0 ......", id, true)
	assert.Equal(t, []string{`ARGUMENT_ERROR "too large map line width 6"`}, drain(out))
}

func TestPlayerID_DeadThing(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)

	s.HandleInput("THING_HEALTH 2 0", uuid.Nil, true)
	s.HandleInput("PLAYER_ID 2", uuid.Nil, true)
	assert.False(t, s.World.PlayerIsAlive)

	s.HandleInput("PLAYER_ID 0", uuid.Nil, true)
	assert.True(t, s.World.PlayerIsAlive)
}

func TestHandleInput_RecoversFromPanic(t *testing.T) {
	s := newTestService(t)
	s.register(Command{Name: "BOOM", Handler: func(handlers.Context) error { panic("boom") }})
	id, out := connect(s)

	s.HandleInput("BOOM", id, true)
	assert.Equal(t, []string{`GAME_ERROR "internal error: boom"`}, drain(out))
	assert.False(t, s.cmdLog.Exists())
}

func TestGamestate_Format(t *testing.T) {
	s := newTestService(t)
	loadTestWorld(t, s)
	id, out := connect(s)

	s.HandleInput("GET_GAMESTATE", id, true)
	msgs := drain(out)

	var mapLines []string
	for _, msg := range msgs {
		if strings.HasPrefix(msg, "VISIBLE_MAP_LINE") {
			mapLines = append(mapLines, msg)
		}
	}
	require.Len(t, mapLines, 5)
	assert.True(t, strings.HasPrefix(mapLines[0], "VISIBLE_MAP_LINE     0 \""), mapLines[0])
	assert.Contains(t, msgs, "THING_TYPE 1 food")
	assert.NotContains(t, msgs, "THING_HEALTH 1 0", "items have no health")
	assert.NotContains(t, msgs, "THING_TYPE 2 monster", "monster is out of view")

	lines, err := s.cmdLog.Lines()
	require.NoError(t, err)
	assert.Equal(t, testWorld, lines, "GET_GAMESTATE is not logged")
}

func TestCommands_Registry(t *testing.T) {
	s := newTestService(t)
	names := make([]string, 0)
	for _, cmd := range s.Commands() {
		names = append(names, cmd.Name)
	}
	for _, want := range []string{"GEN_WORLD", "TASK:MOVE", "SET_TASK:EAT", "THING_INVENTORY", "SAVE"} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)

	cmd, ok := s.Command("SET_TASK:MOVE")
	require.True(t, ok)
	assert.Equal(t, "int:nonneg int:nonneg string:direction", cmd.Signature)

	cmd, ok = s.Command("SET_TASK:WAIT")
	require.True(t, ok)
	assert.Equal(t, "int:nonneg int:nonneg", cmd.Signature)
}
