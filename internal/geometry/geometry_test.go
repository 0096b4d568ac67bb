package geometry

import (
	"testing"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New("hex")
	require.NoError(t, err)
	assert.Equal(t, "hex", g.Name())

	g, err = New("square")
	require.NoError(t, err)
	assert.Equal(t, "square", g.Name())

	_, err = New("triangle")
	assert.Error(t, err)
}

func TestDirections_Sorted(t *testing.T) {
	assert.Equal(t, []Direction{DownLeft, DownRight, Left, Right, UpLeft, UpRight}, Hex{}.Directions())
	assert.Equal(t, []Direction{Down, Left, Right, Up}, Square{}.Directions())
	assert.Equal(t, []string{"DOWN", "LEFT", "RIGHT", "UP"}, DirectionNames(Square{}))
}

func TestHex_RowParity(t *testing.T) {
	tests := []struct {
		name string
		from types.YX
		dir  Direction
		want types.YX
	}{
		{"even UPLEFT", types.YX{Y: 4, X: 4}, UpLeft, types.YX{Y: 3, X: 4}},
		{"even UPRIGHT", types.YX{Y: 4, X: 4}, UpRight, types.YX{Y: 3, X: 5}},
		{"even DOWNLEFT", types.YX{Y: 4, X: 4}, DownLeft, types.YX{Y: 5, X: 4}},
		{"even DOWNRIGHT", types.YX{Y: 4, X: 4}, DownRight, types.YX{Y: 5, X: 5}},
		{"odd UPLEFT", types.YX{Y: 5, X: 4}, UpLeft, types.YX{Y: 4, X: 3}},
		{"odd UPRIGHT", types.YX{Y: 5, X: 4}, UpRight, types.YX{Y: 4, X: 4}},
		{"odd DOWNLEFT", types.YX{Y: 5, X: 4}, DownLeft, types.YX{Y: 6, X: 3}},
		{"odd DOWNRIGHT", types.YX{Y: 5, X: 4}, DownRight, types.YX{Y: 6, X: 4}},
		{"LEFT", types.YX{Y: 5, X: 4}, Left, types.YX{Y: 5, X: 3}},
		{"RIGHT", types.YX{Y: 4, X: 4}, Right, types.YX{Y: 4, X: 5}},
		{"negative odd row", types.YX{Y: -1, X: 0}, UpLeft, types.YX{Y: -2, X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hex{}.Move(tt.from, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMove_OppositeReturns(t *testing.T) {
	for _, g := range []Geometry{Hex{}, Square{}} {
		for _, start := range []types.YX{{Y: 4, X: 4}, {Y: 5, X: 4}, {Y: 0, X: 7}} {
			for _, d := range g.Directions() {
				there, err := g.Move(start, d)
				require.NoError(t, err)
				back, err := g.Move(there, Opposite(d))
				require.NoError(t, err)
				assert.Equal(t, start, back, "%s %v %s", g.Name(), start, d)
			}
		}
	}
}

func TestMove_UnknownDirection(t *testing.T) {
	_, err := Square{}.Move(types.YX{}, UpLeft)
	var argErr *types.ArgumentError
	assert.ErrorAs(t, err, &argErr)

	_, err = Hex{}.Move(types.YX{}, Up)
	assert.ErrorAs(t, err, &argErr)
}

func TestMoveTiled_CrossesTileEdge(t *testing.T) {
	size := types.YX{Y: 4, X: 4}
	pos := types.Position{Small: types.YX{Y: 1, X: 3}}

	got, err := MoveTiled(Hex{}, pos, UpRight, size)
	require.NoError(t, err)
	assert.Equal(t, types.Position{Big: types.YX{Y: 0, X: 0}, Small: types.YX{Y: 0, X: 3}}, got)

	got, err = MoveTiled(Hex{}, pos, Right, size)
	require.NoError(t, err)
	assert.Equal(t, types.Position{Big: types.YX{Y: 0, X: 1}, Small: types.YX{Y: 1, X: 0}}, got)

	got, err = MoveTiled(Square{}, types.Position{}, Up, size)
	require.NoError(t, err)
	assert.Equal(t, types.Position{Big: types.YX{Y: -1, X: 0}, Small: types.YX{Y: 3, X: 0}}, got)
}

func TestNeighborCache(t *testing.T) {
	c := NewNeighborCache(Hex{}, types.YX{Y: 3, X: 3})

	ns := c.Get(types.YX{Y: 0, X: 0})
	require.Len(t, ns, 6)
	inBounds := 0
	for _, n := range ns {
		if n.InBounds {
			inBounds++
		}
	}
	// (0,0) на чётной строке: справа и снизу-справа/снизу-слева
	assert.Equal(t, 3, inBounds)
	assert.Equal(t, DownLeft, ns[0].Dir)

	again := c.Get(types.YX{Y: 0, X: 0})
	assert.Same(t, &ns[0], &again[0], "second call must hit the cache")
}
