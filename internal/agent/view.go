package agent

import (
	"slices"
	"strings"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/engine/handlers"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/internal/protocol"
)

// ThingView — вещь, как ее видит клиент.
type ThingView struct {
	ID     int
	Type   domain.ThingType
	Pos    types.YX
	Health int
}

// View — локальная картина мира, собранная из сообщений сервера.
// Координаты — в окне обзора игрока, как их присылает сервер.
type View struct {
	Turn       int
	Map        *domain.Map
	Things     map[int]*ThingView
	Inventory  []int
	LastResult string
	// Complete — пришел GAME_STATE_COMPLETE, картина целая.
	Complete bool

	geom geometry.Geometry
}

func NewView(g geometry.Geometry) *View {
	return &View{
		Map:    domain.NewMap(g, types.YX{}, domain.TerrainUnknown),
		Things: make(map[int]*ThingView),
		geom:   g,
	}
}

// thing возвращает вещь по id, создавая пустую.
func (v *View) thing(id int) *ThingView {
	t, ok := v.Things[id]
	if !ok {
		t = &ThingView{ID: id, Type: domain.ThingUnknown}
		v.Things[id] = t
	}
	return t
}

// Carried — вещь в инвентаре игрока.
func (v *View) Carried(id int) bool {
	return slices.Contains(v.Inventory, id)
}

// ThingsAt — вещи на клетке окна, не в инвентаре, по возрастанию id.
func (v *View) ThingsAt(pos types.YX) []*ThingView {
	var out []*ThingView
	for _, id := range v.ids() {
		if t := v.Things[id]; t.Pos == pos && !v.Carried(id) {
			out = append(out, t)
		}
	}
	return out
}

func (v *View) ids() []int {
	ids := make([]int, 0, len(v.Things))
	for id := range v.Things {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// clientCommand — сообщение сервера, которое понимает View.
type clientCommand struct {
	signature string
	apply     func(v *View, args protocol.Args) error
}

var clientCommands = map[string]clientCommand{
	handlers.MsgTurn: {protocol.TypeIntNonneg, func(v *View, a protocol.Args) error {
		// Новое состояние: старые вещи и инвентарь забываются
		v.Turn = a.Int(0)
		v.Things = make(map[int]*ThingView)
		v.Inventory = nil
		v.Complete = false
		return nil
	}},
	handlers.MsgMap: {protocol.TypeYXPos, func(v *View, a protocol.Args) error {
		v.Map = domain.NewMap(v.geom, a.YX(0), domain.TerrainUnknown)
		return nil
	}},
	handlers.MsgVisibleMapLine: {protocol.TypeIntNonneg + " " + protocol.TypeString, func(v *View, a protocol.Args) error {
		return v.Map.SetLine(a.Int(0), a.Str(1))
	}},
	handlers.MsgThingType: {protocol.TypeIntNonneg + " " + protocol.TypeString, func(v *View, a protocol.Args) error {
		v.thing(a.Int(0)).Type = domain.ThingType(a.Str(1))
		return nil
	}},
	handlers.MsgThingPos: {protocol.TypeIntNonneg + " " + protocol.TypeYXNonneg, func(v *View, a protocol.Args) error {
		v.thing(a.Int(0)).Pos = a.YX(1)
		return nil
	}},
	handlers.MsgThingHealth: {protocol.TypeIntNonneg + " " + protocol.TypeIntNonneg, func(v *View, a protocol.Args) error {
		v.thing(a.Int(0)).Health = a.Int(1)
		return nil
	}},
	handlers.MsgPlayerInventory: {protocol.TypeSeqIntNonneg, func(v *View, a protocol.Args) error {
		v.Inventory = a.Ints(0)
		return nil
	}},
	handlers.MsgLastPlayerResult: {protocol.TypeString, func(v *View, a protocol.Args) error {
		v.LastResult = a.Str(0)
		return nil
	}},
	handlers.MsgTurnFinished: {protocol.TypeIntNonneg, func(v *View, a protocol.Args) error {
		return nil
	}},
	handlers.MsgGameStateDone: {"", func(v *View, a protocol.Args) error {
		v.Complete = true
		return nil
	}},
}

// Apply применяет одно сообщение сервера.
// handled == false — сообщение не про картину мира (ошибки, BYE и прочее).
func (v *View) Apply(msg string) (handled bool, err error) {
	tokens := protocol.Tokenize(msg)
	if len(tokens) == 0 {
		return false, nil
	}
	cmd, ok := clientCommands[tokens[0]]
	if !ok {
		return false, nil
	}
	args, err := protocol.ArgsParse(cmd.signature, tokens[1:], nil)
	if err != nil {
		return true, err
	}
	return true, cmd.apply(v, args)
}

// Render рисует окно: вещи поверх рельефа, живые поверх предметов.
// color — раскрашивать ANSI-последовательностями.
func (v *View) Render(color bool) string {
	size := v.Map.Size
	cells := make([]types.Glyph, size.Area())
	for pos := range v.Map.Positions() {
		cells[pos.Y*size.X+pos.X] = domain.TerrainGlyph(v.Map.At(pos))
	}
	// Сначала предметы, затем живые поверх них
	for _, items := range []bool{true, false} {
		for _, id := range v.ids() {
			t := v.Things[id]
			if v.Carried(id) || !size.Contains(t.Pos) || domain.KindOf(t.Type).Item != items {
				continue
			}
			cells[t.Pos.Y*size.X+t.Pos.X] = domain.ThingGlyph(t.Type)
		}
	}

	var b strings.Builder
	for y := 0; y < size.Y; y++ {
		// Нечетные ряды гексов сдвинуты влево, то есть четные — вправо
		if v.geom.Name() == "hex" && y%2 == 0 {
			b.WriteByte(' ')
		}
		for x := 0; x < size.X; x++ {
			g := cells[y*size.X+x]
			if color {
				b.WriteString(g.ANSI())
			} else {
				b.WriteByte(g.Char())
			}
			if v.geom.Name() == "hex" {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
