package world

import (
	"slices"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/pkg/dungeon"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/plomlompom/plomrogue2-experiments/pkg/utils"
	"github.com/sirupsen/logrus"
)

// World - состояние симуляции: тайлы, вещи в порядке реестра, счетчик ходов.
//
// Не потокобезопасен: им владеет единственный игровой цикл.
type World struct {
	Turn          int
	PlayerID      int
	PlayerIsAlive bool

	// Seed - сид мира в том виде, в каком он пришел (число или строка).
	Seed string
	Maps *domain.TileSet

	// Radius - радиус обзора новых живых вещей.
	Radius int
	// TaskTodo - сколько ходов мира занимает новая задача.
	TaskTodo int

	things []*Thing
	log    *logrus.Entry
}

// New создает пустой мир.
func New(g geometry.Geometry, tileSize types.YX, radius int) *World {
	if radius <= 0 {
		radius = domain.DefaultViewRadius
	}
	return &World{
		PlayerIsAlive: true,
		Maps:          domain.NewTileSet(g, tileSize),
		Radius:        radius,
		TaskTodo:      domain.DefaultTaskTodo,
		log:           logger.Component("world"),
	}
}

// Geometry - топология мира.
func (w *World) Geometry() geometry.Geometry {
	return w.Maps.Geometry()
}

// SetSeed задает сид и генератор для лениво создаваемых тайлов.
func (w *World) SetSeed(seed string) {
	w.Seed = seed
	w.Maps.Generator = dungeon.TileGenerator(utils.SeedFromString(seed))
}

// Things возвращает вещи в порядке реестра. Срез не копируется.
func (w *World) Things() []*Thing {
	return w.things
}

// GetThing возвращает вещь по id или nil.
func (w *World) GetThing(id int) *Thing {
	for _, t := range w.things {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// GetOrCreateThing возвращает вещь по id, создавая безтиповую, если ее нет.
func (w *World) GetOrCreateThing(id int) *Thing {
	if t := w.GetThing(id); t != nil {
		return t
	}
	t := w.newThing(id, domain.ThingUnknown)
	w.things = append(w.things, t)
	return t
}

// NewThingID - следующий id после последней вещи реестра.
func (w *World) NewThingID() int {
	if len(w.things) == 0 {
		return 0
	}
	return w.things[len(w.things)-1].ID + 1
}

func (w *World) newThing(id int, typ domain.ThingType) *Thing {
	t := &Thing{
		ID:     id,
		Type:   typ,
		Radius: w.Radius,
		world:  w,
	}
	kind := domain.KindOf(typ)
	if kind.Animate {
		t.Health = kind.Health
		_ = t.RestoreTask(TaskWait, TaskArgs{}, w.TaskTodo)
	}
	return t
}

// AddThing создает вещь типа typ с новым id в конце реестра.
func (w *World) AddThing(typ domain.ThingType, pos types.Position) *Thing {
	t := w.newThing(w.NewThingID(), typ)
	t.Position = pos
	w.things = append(w.things, t)
	return t
}

// SetThingType меняет тип вещи (создавая ее при необходимости).
// Позиция, место в реестре и флаг InInventory сохраняются,
// остальное сбрасывается к значениям нового типа.
func (w *World) SetThingType(id int, typ domain.ThingType) *Thing {
	old := w.GetOrCreateThing(id)
	t := w.newThing(id, typ)
	t.Position = old.Position
	t.InInventory = old.InInventory
	i := slices.Index(w.things, old)
	w.things[i] = t
	old.removed = true
	return t
}

// RemoveThing удаляет вещь из реестра.
func (w *World) RemoveThing(id int) {
	i := slices.IndexFunc(w.things, func(t *Thing) bool { return t.ID == id })
	if i < 0 {
		return
	}
	w.things[i].removed = true
	w.things = slices.Delete(w.things, i, i+1)
}

// ThingsAt - вещи в позиции pos, в порядке реестра.
func (w *World) ThingsAt(pos types.Position) []*Thing {
	var out []*Thing
	for _, t := range w.things {
		if t.Position == pos {
			out = append(out, t)
		}
	}
	return out
}

// Player возвращает вещь игрока или nil.
func (w *World) Player() *Thing {
	return w.GetThing(w.PlayerID)
}

// kill обрабатывает смерть: игрок остается в реестре мертвым,
// остальные удаляются, а их инвентарь падает на месте.
func (w *World) kill(t *Thing) {
	if t.ID == w.PlayerID {
		w.PlayerIsAlive = false
		w.log.WithField("thing", t.ID).Info("Player died.")
		return
	}
	for _, id := range t.Inventory {
		if item := w.GetThing(id); item != nil {
			item.InInventory = false
		}
	}
	t.Inventory = nil
	w.RemoveThing(t.ID)
	w.log.WithFields(logrus.Fields{"thing": t.ID, "type": t.Type}).Debug("Thing died.")
}

// ProceedToNextPlayerTurn крутит ходы мира, пока игроку не понадобится
// новое решение.
//
// Порядок: вещи после игрока в реестре, затем счетчик хода, затем вещи
// перед игроком, затем сам игрок без ИИ. Цикл заканчивается, когда у
// игрока не осталось задачи, он умер или исчез из реестра.
// Игрок, который не может ходить, получает отказ до первого хода.
func (w *World) ProceedToNextPlayerTurn() error {
	player := w.Player()
	if player == nil {
		return types.GameErrorf("no player thing of ID %d", w.PlayerID)
	}
	if !player.Animate() {
		return types.GameErrorf("player thing of ID %d (%s) cannot act", player.ID, player.Type)
	}
	for {
		things := slices.Clone(w.things)
		playerIdx := slices.Index(things, player)

		for _, t := range things[playerIdx+1:] {
			t.Proceed(true)
		}
		w.Turn++
		for _, t := range things[:playerIdx] {
			t.Proceed(true)
		}
		player.Proceed(false)

		if player.removed || player.Task == nil || !w.PlayerIsAlive {
			return nil
		}
	}
}

// SwitchPlayer ставит текущему игроку WAIT и передает управление
// следующей живой вещи реестра (по кругу). Предметы пропускаются.
// Если передать некому, мир не меняется.
func (w *World) SwitchPlayer() error {
	player := w.Player()
	if player == nil {
		return types.GameErrorf("no player thing of ID %d", w.PlayerID)
	}
	i := slices.Index(w.things, player)
	var next *Thing
	for step := 1; step < len(w.things); step++ {
		if t := w.things[(i+step)%len(w.things)]; t.Animate() {
			next = t
			break
		}
	}
	if next == nil {
		return types.GameErrorf("no other animate thing to switch to")
	}
	if player.Animate() {
		if err := player.SetTask(TaskWait, TaskArgs{}); err != nil {
			return err
		}
	}
	w.PlayerID = next.ID
	w.PlayerIsAlive = next.Health > 0
	w.EnsureTilesAround(next)
	return nil
}

// EnsureTilesAround материализует все тайлы, которые пересекает окно обзора t.
func (w *World) EnsureTilesAround(t *Thing) {
	size := w.Maps.TileSize
	if size.Y <= 0 || size.X <= 0 {
		return
	}
	offset := t.SurroundingsOffset()
	window := t.WindowSize()
	first := types.PositionFromGlobal(offset, size).Big
	last := types.PositionFromGlobal(offset.Add(window).Sub(types.YX{Y: 1, X: 1}), size).Big
	created := 0
	for y := first.Y; y <= last.Y; y++ {
		for x := first.X; x <= last.X; x++ {
			big := types.YX{Y: y, X: x}
			if !w.Maps.Has(big) {
				w.Maps.GetMap(big, true)
				created++
			}
		}
	}
	if created > 0 {
		t.UnsetSurroundings()
		w.log.WithFields(logrus.Fields{"thing": t.ID, "tiles": created}).Debug("Tiles materialized.")
	}
}
