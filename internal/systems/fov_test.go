package systems

import (
	"math/rand"
	"testing"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMap(g geometry.Geometry, h, w int) *domain.Map {
	return domain.NewMap(g, types.YX{Y: h, X: w}, domain.TerrainFloor)
}

func visible(stencil *domain.Map, y, x int) bool {
	return stencil.At(types.YX{Y: y, X: x}) == domain.TerrainFloor
}

func TestComputeStencil_OpenMap(t *testing.T) {
	tests := []struct {
		name   string
		geom   geometry.Geometry
		size   int
		center types.YX
		radius int
		want   int
	}{
		// 1 + 6 + 12 + 18
		{"hex radius 3", geometry.Hex{}, 9, types.YX{Y: 4, X: 4}, 3, 37},
		// 1 + 4 + 8
		{"square radius 2", geometry.Square{}, 7, types.YX{Y: 3, X: 3}, 2, 13},
		{"hex unlimited", geometry.Hex{}, 5, types.YX{Y: 2, X: 2}, 0, 25},
		{"hex unlimited from corner", geometry.Hex{}, 5, types.YX{Y: 0, X: 0}, 0, 25},
		{"square unlimited", geometry.Square{}, 4, types.YX{Y: 1, X: 2}, 0, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := openMap(tt.geom, tt.size, tt.size)
			stencil := ComputeStencil(m, tt.center, tt.radius)
			assert.Equal(t, m.Size, stencil.Size)
			assert.True(t, visible(stencil, tt.center.Y, tt.center.X), "center is always visible")
			assert.Equal(t, tt.want, CountVisible(stencil))
		})
	}
}

func TestComputeStencil_HexWallCastsShadow(t *testing.T) {
	m := openMap(geometry.Hex{}, 9, 9)
	require.NoError(t, m.Set(types.YX{Y: 4, X: 5}, domain.TerrainRock))

	stencil := ComputeStencil(m, types.YX{Y: 4, X: 4}, 4)

	assert.True(t, visible(stencil, 4, 5), "the wall itself is seen")
	assert.False(t, visible(stencil, 4, 6))
	assert.False(t, visible(stencil, 4, 7))
	assert.False(t, visible(stencil, 4, 8))
	assert.True(t, visible(stencil, 5, 6), "cells beside the shadow stay visible")
	assert.True(t, visible(stencil, 4, 2))
}

func TestComputeStencil_SquareWallCastsShadow(t *testing.T) {
	m := openMap(geometry.Square{}, 7, 7)
	require.NoError(t, m.Set(types.YX{Y: 3, X: 4}, domain.TerrainWall))

	stencil := ComputeStencil(m, types.YX{Y: 3, X: 3}, 2)

	assert.True(t, visible(stencil, 3, 4))
	assert.False(t, visible(stencil, 3, 5))
	assert.True(t, visible(stencil, 4, 4))
	assert.True(t, visible(stencil, 3, 1))
}

func TestComputeStencil_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, g := range []geometry.Geometry{geometry.Hex{}, geometry.Square{}} {
		m := openMap(g, 17, 17)
		for pos := range m.Positions() {
			if rng.Intn(5) == 0 {
				_ = m.Set(pos, domain.TerrainRock)
			}
		}
		center := types.YX{Y: 8, X: 8}
		_ = m.Set(center, domain.TerrainFloor)

		first := ComputeStencil(m, center, 8)
		second := ComputeStencil(m, center, 8)
		assert.Equal(t, first.Terrain(), second.Terrain(), g.Name())
	}
}

func TestComputeStencil_OpaqueCellsNeverAddVisibility(t *testing.T) {
	center := types.YX{Y: 4, X: 4}
	m := openMap(geometry.Hex{}, 9, 9)
	open := CountVisible(ComputeStencil(m, center, 3))

	require.NoError(t, m.Set(types.YX{Y: 4, X: 5}, domain.TerrainRock))
	oneWall := CountVisible(ComputeStencil(m, center, 3))

	require.NoError(t, m.Set(types.YX{Y: 3, X: 4}, domain.TerrainRock))
	twoWalls := CountVisible(ComputeStencil(m, center, 3))

	assert.Less(t, oneWall, open)
	assert.LessOrEqual(t, twoWalls, oneWall)
}

func TestComputeStencil_CenterOutsideMap(t *testing.T) {
	m := openMap(geometry.Hex{}, 3, 3)
	stencil := ComputeStencil(m, types.YX{Y: 5, X: 5}, 2)
	assert.Equal(t, 0, CountVisible(stencil))
}
