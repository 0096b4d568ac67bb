package dungeon

import (
	"math/rand"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
)

// Rect - Вспомогательная структура для руин
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// TileBuilder предоставляет fluent API для заполнения тайла
type TileBuilder struct {
	m     *domain.Map
	rng   *rand.Rand
	ruins []Rect
}

// NewTile создает builder поверх уже созданной карты тайла
func NewTile(m *domain.Map, rng *rand.Rand) *TileBuilder {
	return &TileBuilder{m: m, rng: rng}
}

// Scatter заполняет каждую клетку случайным символом из choices.
// Повторы в choices задают веса.
func (b *TileBuilder) Scatter(choices []rune) *TileBuilder {
	if len(choices) == 0 {
		return b
	}
	for pos := range b.m.Positions() {
		_ = b.m.Set(pos, choices[b.rng.Intn(len(choices))])
	}
	return b
}

// WithRuins ставит до maxRuins непересекающихся прямоугольных руин:
// стены '#', пол внутри и один проем.
func (b *TileBuilder) WithRuins(maxRuins int) *TileBuilder {
	size := b.m.Size
	if size.Y < MinRuinSize || size.X < MinRuinSize {
		return b
	}
	for i := 0; i < maxRuins; i++ {
		w := b.randRange(MinRuinSize, min(MaxRuinSize, size.X))
		h := b.randRange(MinRuinSize, min(MaxRuinSize, size.Y))
		r := Rect{
			X: b.randRange(0, size.X-w),
			Y: b.randRange(0, size.Y-h),
			W: w,
			H: h,
		}

		failed := false
		for _, other := range b.ruins {
			if r.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}
		b.createRuin(r)
		b.ruins = append(b.ruins, r)
	}
	return b
}

// Ruins возвращает поставленные руины
func (b *TileBuilder) Ruins() []Rect {
	return b.ruins
}

// Build возвращает готовую карту
func (b *TileBuilder) Build() *domain.Map {
	return b.m
}

func (b *TileBuilder) createRuin(r Rect) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			edge := y == r.Y || x == r.X || y == r.Y+r.H-1 || x == r.X+r.W-1
			c := domain.TerrainFloor
			if edge {
				c = domain.TerrainWall
			}
			_ = b.m.Set(types.YX{Y: y, X: x}, c)
		}
	}

	// Проем в случайной стене, не в углу
	var door types.YX
	switch b.rng.Intn(4) {
	case 0:
		door = types.YX{Y: r.Y, X: b.randRange(r.X+1, r.X+r.W-2)}
	case 1:
		door = types.YX{Y: r.Y + r.H - 1, X: b.randRange(r.X+1, r.X+r.W-2)}
	case 2:
		door = types.YX{Y: b.randRange(r.Y+1, r.Y+r.H-2), X: r.X}
	default:
		door = types.YX{Y: b.randRange(r.Y+1, r.Y+r.H-2), X: r.X + r.W - 1}
	}
	_ = b.m.Set(door, domain.TerrainFloor)
}

func (b *TileBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}
