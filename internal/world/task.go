package world

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
)

// Имена задач
const (
	TaskWait   = "WAIT"
	TaskMove   = "MOVE"
	TaskPickup = "PICKUP"
	TaskDrop   = "DROP"
	TaskEat    = "EAT"
)

// TaskResultSuccess - результат выполненной задачи.
const TaskResultSuccess = "success"

// TaskArg - какой аргумент принимает задача.
type TaskArg int

const (
	ArgNone TaskArg = iota
	ArgDirection
	ArgThingID
)

// Signature - сигнатура аргумента в грамматике команд.
func (a TaskArg) Signature() string {
	switch a {
	case ArgDirection:
		return "string:direction"
	case ArgThingID:
		return "int:nonneg"
	}
	return ""
}

// TaskArgs - аргументы задачи. Заполнено только поле, нужное ее TaskArg.
type TaskArgs struct {
	Direction geometry.Direction
	ThingID   int
}

// TaskSpec описывает вид задачи: проверку выполнимости и эффект.
type TaskSpec struct {
	Name string
	Arg  TaskArg

	check func(t *Thing, args TaskArgs) error
	do    func(t *Thing, args TaskArgs) string
}

// Task - незавершенное многоходовое действие одной вещи.
type Task struct {
	Spec *TaskSpec
	Args TaskArgs
	Todo int
}

var taskSpecs = map[string]*TaskSpec{
	TaskWait:   {Name: TaskWait, Arg: ArgNone, check: checkNothing, do: doWait},
	TaskMove:   {Name: TaskMove, Arg: ArgDirection, check: checkMove, do: doMove},
	TaskPickup: {Name: TaskPickup, Arg: ArgThingID, check: checkPickup, do: doPickup},
	TaskDrop:   {Name: TaskDrop, Arg: ArgThingID, check: checkDrop, do: doDrop},
	TaskEat:    {Name: TaskEat, Arg: ArgThingID, check: checkEat, do: doEat},
}

// LookupTask находит вид задачи по имени.
func LookupTask(name string) (*TaskSpec, bool) {
	spec, ok := taskSpecs[name]
	return spec, ok
}

// TaskNames - имена задач по алфавиту.
func TaskNames() []string {
	names := make([]string, 0, len(taskSpecs))
	for name := range taskSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTask создает задачу с начальным счетчиком. Выполнимость не проверяется.
func NewTask(name string, args TaskArgs) (*Task, error) {
	spec, ok := LookupTask(name)
	if !ok {
		return nil, types.ArgErrorf("unknown task %s", name)
	}
	return &Task{Spec: spec, Args: args, Todo: domain.DefaultTaskTodo}, nil
}

// Name - имя вида задачи.
func (task *Task) Name() string {
	return task.Spec.Name
}

// Check проверяет, выполнима ли задача для t прямо сейчас.
// Побочных эффектов нет: вызывается каждый ход.
func (task *Task) Check(t *Thing) error {
	return task.Spec.check(t, task.Args)
}

func (task *Task) do(t *Thing) string {
	return task.Spec.do(t, task.Args)
}

// ArgsString сериализует аргументы для SET_TASK. quote экранирует строки.
func (task *Task) ArgsString(quote func(string) string) string {
	switch task.Spec.Arg {
	case ArgDirection:
		return quote(string(task.Args.Direction))
	case ArgThingID:
		return strconv.Itoa(task.Args.ThingID)
	}
	return ""
}

// String для логов: "MOVE RIGHT (todo 2)"
func (task *Task) String() string {
	var b strings.Builder
	b.WriteString(task.Spec.Name)
	if args := task.ArgsString(func(s string) string { return s }); args != "" {
		b.WriteString(" " + args)
	}
	b.WriteString(" (todo " + strconv.Itoa(task.Todo) + ")")
	return b.String()
}

func checkNothing(*Thing, TaskArgs) error { return nil }

func doWait(*Thing, TaskArgs) string { return TaskResultSuccess }

// MOVE: клетка назначения в известном мире, это пол, и на ней нет блокирующей вещи.
func checkMove(t *Thing, args TaskArgs) error {
	w := t.world
	target, err := geometry.MoveTiled(w.Maps.Geometry(), t.Position, args.Direction, w.Maps.TileSize)
	if err != nil {
		return types.GameErrorf("%d cannot move %s", t.ID, args.Direction)
	}
	if !w.Maps.Has(target.Big) {
		return types.GameErrorf("would move outside map bounds")
	}
	if w.Maps.Cell(target) != domain.TerrainFloor {
		return types.GameErrorf("%d would move into illegal terrain", t.ID)
	}
	for _, other := range w.ThingsAt(target) {
		if other.Blocking() {
			return types.GameErrorf("%d would move into other thing", t.ID)
		}
	}
	return nil
}

func doMove(t *Thing, args TaskArgs) string {
	w := t.world
	target, _ := geometry.MoveTiled(w.Maps.Geometry(), t.Position, args.Direction, w.Maps.TileSize)
	t.SetPosition(target)
	if t.ID == w.PlayerID {
		w.EnsureTilesAround(t)
	}
	return TaskResultSuccess
}

func checkPickup(t *Thing, args TaskArgs) error {
	item := t.world.GetThing(args.ThingID)
	if item == nil || !slices.Contains(t.PickableItems(), item.ID) {
		return types.GameErrorf("thing of ID %d not in reach to pick up", args.ThingID)
	}
	return nil
}

func doPickup(t *Thing, args TaskArgs) string {
	item := t.world.GetThing(args.ThingID)
	t.Inventory = append(t.Inventory, item.ID)
	item.InInventory = true
	item.SetPosition(t.Position)
	return TaskResultSuccess
}

func inventoryItem(t *Thing, id int) (*Thing, error) {
	item := t.world.GetThing(id)
	if item == nil {
		return nil, types.GameErrorf("no thing of ID %d", id)
	}
	if !slices.Contains(t.Inventory, id) {
		return nil, types.GameErrorf("no thing of ID %d in inventory", id)
	}
	return item, nil
}

func checkDrop(t *Thing, args TaskArgs) error {
	_, err := inventoryItem(t, args.ThingID)
	return err
}

func doDrop(t *Thing, args TaskArgs) string {
	t.removeFromInventory(args.ThingID)
	return TaskResultSuccess
}

func checkEat(t *Thing, args TaskArgs) error {
	item, err := inventoryItem(t, args.ThingID)
	if err != nil {
		return err
	}
	if item.Type != domain.ThingFood {
		return types.GameErrorf("thing of ID %d is not food", args.ThingID)
	}
	return nil
}

func doEat(t *Thing, args TaskArgs) string {
	item := t.removeFromInventory(args.ThingID)
	t.world.RemoveThing(item.ID)
	t.Health += domain.EatHealthGain
	return TaskResultSuccess
}
