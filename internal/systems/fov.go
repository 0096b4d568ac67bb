package systems

import (
	"math"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Окружность в условных единицах. Число произвольное, считаем во float.
const circle = 360.0

// shadowCone - угловой интервал тени [left, right], left >= right.
// Углы отсчитываются по часовой стрелке от направления RIGHT.
type shadowCone struct {
	left  float64
	right float64
}

// shadowCaster - состояние одного расчета видимости.
type shadowCaster struct {
	source  *domain.Map
	stencil *domain.Map
	edges   int
	cones   []shadowCone
}

// ComputeStencil строит карту видимости для center на карте source.
//
// Результат имеет форму source: '.' - клетка видна, '?' - нет.
// Непрозрачной считается любая клетка source, отличная от '.'.
// Обход идет кольцами наружу, пока кольцо пересекается с картой
// и (если radius > 0) пока расстояние не больше radius.
func ComputeStencil(source *domain.Map, center types.YX, radius int) *domain.Map {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": center,
	})

	stencil := source.NewFromShape(domain.TerrainUnknown)
	if !source.Size.Contains(center) {
		fovLogger.Warn("FOV center outside of map, nothing visible.")
		return stencil
	}

	// 1. Центр всегда виден
	_ = stencil.Set(center, domain.TerrainFloor)

	// 2. Кольца наружу
	g := source.Geometry()
	caster := &shadowCaster{
		source:  source,
		stencil: stencil,
		edges:   len(g.CircleOut()),
	}
	pos := center
	for distance := 1; radius <= 0 || distance <= radius; distance++ {
		ringInMap := false
		// Каждое кольцо начинается на шаг правее конца предыдущего.
		pos, _ = g.Move(pos, geometry.Right)
		for dirIdx, edge := range g.CircleOut() {
			for progress := 0; progress < distance; progress++ {
				for _, d := range edge {
					pos, _ = g.Move(pos, d)
				}
				if !source.Size.Contains(pos) {
					continue
				}
				caster.process(pos, distance, dirIdx, progress)
				ringInMap = true
			}
		}
		if !ringInMap {
			break
		}
	}

	fovLogger.WithFields(logrus.Fields{
		"radius":        radius,
		"shadow_cones":  len(caster.cones),
		"visible_tiles": CountVisible(stencil),
	}).Debug("FOV calculation complete.")

	return stencil
}

// CountVisible - число видимых клеток в карте видимости.
func CountVisible(stencil *domain.Map) int {
	n := 0
	for pos := range stencil.Positions() {
		if stencil.At(pos) == domain.TerrainFloor {
			n++
		}
	}
	return n
}

func correctArm(arm float64) float64 {
	if arm < 0 {
		arm += circle
	}
	return arm
}

// process считает конус клетки по ее порядковому номеру на кольце.
// Конус, проходящий через 0, проверяется двумя половинами.
func (s *shadowCaster) process(pos types.YX, distance, dirIdx, progress int) {
	step := (circle / float64(s.edges)) / float64(distance)
	numberSteps := float64(dirIdx*distance + progress)
	left := correctArm(-(step / 2) - step*numberSteps)
	right := correctArm(left - step)
	if right > left {
		s.eval(pos, shadowCone{left: left, right: 0})
		s.eval(pos, shadowCone{left: circle, right: right})
		return
	}
	s.eval(pos, shadowCone{left: left, right: right})
}

func (s *shadowCaster) eval(pos types.YX, cone shadowCone) {
	if s.inShadow(cone) {
		return
	}
	_ = s.stencil.Set(pos, domain.TerrainFloor)
	if s.source.At(pos) == domain.TerrainFloor {
		return
	}
	// Затененная клетка тени не добавляет, поэтому сюда попадают
	// только видимые непрозрачные клетки.
	merged := false
	for s.merge(cone) {
		merged = true
	}
	if !merged {
		s.cones = append(s.cones, cone)
	}
}

func (s *shadowCaster) inShadow(cone shadowCone) bool {
	for _, old := range s.cones {
		if old.left >= cone.left && cone.right >= old.right {
			return true
		}
	}
	return false
}

// merge расширяет соседний или перекрытый конус. true, если что-то изменилось.
func (s *shadowCaster) merge(cone shadowCone) bool {
	for i := range s.cones {
		old := &s.cones[i]
		if cone.left > old.left && (cone.right < old.left || isClose(cone.right, old.left)) {
			old.left = cone.left
			return true
		}
		if cone.right < old.right && (cone.left > old.right || isClose(cone.left, old.right)) {
			old.right = cone.right
			return true
		}
	}
	return false
}

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}
