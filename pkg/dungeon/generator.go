package dungeon

import (
	"math/rand"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
	"github.com/plomlompom/plomrogue2-experiments/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Константы генерации
const (
	MaxRuins    = 2
	MinRuinSize = 4
	MaxRuinSize = 6
)

// DefaultTerrain - веса рельефа: четыре пола на одну скалу.
var DefaultTerrain = []rune{
	domain.TerrainFloor, domain.TerrainFloor, domain.TerrainFloor, domain.TerrainFloor,
	domain.TerrainRock,
}

// TileGenerator возвращает генератор тайлов для мира с сидом seed.
// Каждый тайл получает собственный ГСЧ от (seed, координата тайла),
// поэтому результат не зависит от порядка материализации.
func TileGenerator(seed int64) domain.TileGenerator {
	return func(big types.YX, m *domain.Map) {
		rng := rand.New(rand.NewSource(utils.TileSeed(seed, big.Y, big.X)))
		b := NewTile(m, rng).Scatter(DefaultTerrain).WithRuins(MaxRuins)

		logger.Log.WithFields(logrus.Fields{
			"component": "dungeon",
			"tile":      big,
			"ruins":     len(b.Ruins()),
		}).Debug("Tile generated.")
	}
}
