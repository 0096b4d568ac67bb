package world

import (
	"errors"
	"slices"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/internal/systems"
)

// Thing - сущность мира.
//
// Инвентарь хранит id, а не указатели: владелец всех вещей - реестр World.
// Позиция переносимой вещи совпадает с позицией носителя.
type Thing struct {
	ID          int
	Type        domain.ThingType
	Position    types.Position
	Inventory   []int
	InInventory bool
	Health      int
	Radius      int

	Task           *Task
	LastTaskResult string

	world   *World
	removed bool

	// Кэш обзора. Сбрасывается в начале каждого хода и при перемещении.
	surroundings *domain.Map
	offset       types.YX
	hasOffset    bool
	stencil      *domain.Map
}

// Kind - свойства типа вещи.
func (t *Thing) Kind() domain.ThingKind {
	return domain.KindOf(t.Type)
}

// Animate - у вещи есть здоровье и задачи.
func (t *Thing) Animate() bool { return t.Kind().Animate }

// Blocking - вещь мешает движению.
func (t *Thing) Blocking() bool { return t.Kind().Blocking }

// IsItem - вещь можно подобрать.
func (t *Thing) IsItem() bool { return t.Kind().Item }

// SetPosition перемещает вещь вместе с инвентарем и сбрасывает кэш обзора.
func (t *Thing) SetPosition(pos types.Position) {
	t.Position = pos
	t.UnsetSurroundings()
	for _, id := range t.Inventory {
		if item := t.world.GetThing(id); item != nil && item != t {
			item.SetPosition(pos)
		}
	}
}

// SetTask ставит задачу, если она выполнима прямо сейчас.
// Иначе возвращает ошибку, а текущая задача остается как была.
func (t *Thing) SetTask(name string, args TaskArgs) error {
	task, err := NewTask(name, args)
	if err != nil {
		return err
	}
	if t.world.TaskTodo > 0 {
		task.Todo = t.world.TaskTodo
	}
	if err := task.Check(t); err != nil {
		return err
	}
	t.Task = task
	return nil
}

// RestoreTask ставит задачу с заданным счетчиком без проверки (для загрузки).
func (t *Thing) RestoreTask(name string, args TaskArgs, todo int) error {
	task, err := NewTask(name, args)
	if err != nil {
		return err
	}
	task.Todo = todo
	t.Task = task
	return nil
}

// Proceed продвигает вещь на один ход мира.
//
// Здоровье уменьшается на 1, на нуле вещь умирает. Затем задача
// перепроверяется: при провале она снимается и причина запоминается.
// Иначе счетчик уменьшается и на нуле задача выполняется.
// С isAI вещь сразу выбирает себе новую задачу.
func (t *Thing) Proceed(isAI bool) {
	if !t.Animate() || t.removed {
		return
	}
	t.UnsetSurroundings()

	// 1. Здоровье
	t.Health--
	if t.Health <= 0 {
		t.world.kill(t)
		return
	}

	// 2. Перепроверка задачи
	if t.Task == nil {
		if isAI {
			t.decideTaskOrWait()
		}
		return
	}
	if err := t.Task.Check(t); err != nil {
		t.world.log.WithField("thing", t.ID).WithError(err).Debug("Task aborted.")
		t.Task = nil
		t.LastTaskResult = err.Error()
		if isAI {
			t.decideTaskOrWait()
		}
		return
	}

	// 3. Счетчик и эффект
	t.Task.Todo--
	if t.Task.Todo <= 0 {
		task := t.Task
		t.Task = nil
		t.LastTaskResult = task.do(t)
	}
	if isAI && t.Task == nil {
		t.decideTaskOrWait()
	}
}

func (t *Thing) decideTaskOrWait() {
	if err := t.DecideTask(); err != nil {
		var gameErr *types.GameError
		if !errors.As(err, &gameErr) {
			t.world.log.WithField("thing", t.ID).WithError(err).Warn("AI decision failed.")
		}
		_ = t.SetTask(TaskWait, TaskArgs{})
	}
}

func (t *Thing) removeFromInventory(id int) *Thing {
	i := slices.Index(t.Inventory, id)
	if i < 0 {
		return nil
	}
	t.Inventory = slices.Delete(t.Inventory, i, i+1)
	item := t.world.GetThing(id)
	if item != nil {
		item.InInventory = false
	}
	return item
}

// UnsetSurroundings сбрасывает кэш обзора.
func (t *Thing) UnsetSurroundings() {
	t.surroundings = nil
	t.hasOffset = false
	t.stencil = nil
}

// mustFixIndentation - нужна ли окну лишняя строка, чтобы его верхняя
// строка была четной: тогда гексовое смещение строк в окне совпадает с миром.
func (t *Thing) mustFixIndentation() bool {
	y := t.globalPos().Y
	return mod2(t.Radius) != mod2(y)
}

func mod2(n int) int {
	return n & 1
}

func (t *Thing) globalPos() types.YX {
	return t.Position.Global(t.world.Maps.TileSize)
}

// SurroundingsOffset - глобальная координата левого верхнего угла окна обзора.
func (t *Thing) SurroundingsOffset() types.YX {
	if t.hasOffset {
		return t.offset
	}
	add := 0
	if t.mustFixIndentation() {
		add = 1
	}
	pos := t.globalPos()
	t.offset = types.YX{Y: pos.Y - t.Radius - add, X: pos.X - t.Radius}
	t.hasOffset = true
	return t.offset
}

// WindowSize - размер окна обзора.
func (t *Thing) WindowSize() types.YX {
	h := 2*t.Radius + 1
	if t.mustFixIndentation() {
		h++
	}
	return types.YX{Y: h, X: 2*t.Radius + 1}
}

// WindowPos переводит позицию в мире в координаты окна обзора t.
func (t *Thing) WindowPos(pos types.Position) types.YX {
	return pos.Global(t.world.Maps.TileSize).Sub(t.SurroundingsOffset())
}

// SurroundingMap - рельеф в окне вокруг вещи, собранный из тайлов.
// Отсутствующие тайлы читаются как '?'.
func (t *Thing) SurroundingMap() *domain.Map {
	if t.surroundings != nil {
		return t.surroundings
	}
	ts := t.world.Maps
	offset := t.SurroundingsOffset()
	m := domain.NewMap(ts.Geometry(), t.WindowSize(), domain.TerrainUnknown)
	for pos := range m.Positions() {
		global := offset.Add(pos)
		_ = m.Set(pos, ts.Cell(types.PositionFromGlobal(global, ts.TileSize)))
	}
	t.surroundings = m
	return m
}

// Stencil - карта видимости для окна обзора.
// Вода и неизвестность прозрачны, чтобы исследование могло продолжаться.
func (t *Thing) Stencil() *domain.Map {
	if t.stencil != nil {
		return t.stencil
	}
	surroundings := t.SurroundingMap()
	mask := surroundings.NewFromShape(domain.TerrainBlank)
	for pos := range surroundings.Positions() {
		switch surroundings.At(pos) {
		case domain.TerrainFloor, domain.TerrainWater, domain.TerrainUnknown:
			_ = mask.Set(pos, domain.TerrainFloor)
		}
	}
	t.stencil = systems.ComputeStencil(mask, t.WindowPos(t.Position), t.Radius)
	return t.stencil
}

// VisibleMap - рельеф окна, где невидимые клетки заменены на ' '.
func (t *Thing) VisibleMap() *domain.Map {
	stencil := t.Stencil()
	surroundings := t.SurroundingMap()
	m := surroundings.NewFromShape(domain.TerrainBlank)
	for pos := range m.Positions() {
		if stencil.At(pos) == domain.TerrainFloor {
			_ = m.Set(pos, surroundings.At(pos))
		}
	}
	return m
}

// VisibleThings - вещи не в инвентаре, чьи клетки видны, в порядке реестра.
func (t *Thing) VisibleThings() []*Thing {
	stencil := t.Stencil()
	var visible []*Thing
	for _, other := range t.world.things {
		if other.InInventory {
			continue
		}
		pos := t.WindowPos(other.Position)
		if !stencil.Size.Contains(pos) {
			continue
		}
		if stencil.At(pos) == domain.TerrainFloor {
			visible = append(visible, other)
		}
	}
	return visible
}

// PickableItems - id видимых предметов на той же или соседней клетке.
func (t *Thing) PickableItems() []int {
	own := t.WindowPos(t.Position)
	neighbors := t.SurroundingMap().Neighbors(own)
	var ids []int
	for _, other := range t.VisibleThings() {
		if other == t || !other.IsItem() {
			continue
		}
		pos := t.WindowPos(other.Position)
		if pos == own || isNeighbor(neighbors, pos) {
			ids = append(ids, other.ID)
		}
	}
	return ids
}

func isNeighbor(neighbors []geometry.Neighbor, pos types.YX) bool {
	for _, n := range neighbors {
		if n.InBounds && n.Pos == pos {
			return true
		}
	}
	return false
}
