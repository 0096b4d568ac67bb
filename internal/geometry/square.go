package geometry

import "github.com/plomlompom/plomrogue2-experiments/internal/core/types"

var squareDirections = sortedDirections(Up, Down, Left, Right)

// Кольцо на квадратной сетке - ромб (манхэттенская окружность),
// каждый шаг вдоль ребра диагональный.
var squareCircleOut = [][]Direction{
	{Down, Left}, {Left, Up}, {Up, Right}, {Right, Down},
}

// Square - квадратная сетка с четырьмя направлениями.
type Square struct{}

func (Square) Name() string { return "square" }

func (Square) Directions() []Direction {
	out := make([]Direction, len(squareDirections))
	copy(out, squareDirections)
	return out
}

func (Square) CircleOut() [][]Direction { return squareCircleOut }

func (s Square) Move(pos types.YX, d Direction) (types.YX, error) {
	switch d {
	case Up:
		return types.YX{Y: pos.Y - 1, X: pos.X}, nil
	case Down:
		return types.YX{Y: pos.Y + 1, X: pos.X}, nil
	case Left:
		return types.YX{Y: pos.Y, X: pos.X - 1}, nil
	case Right:
		return types.YX{Y: pos.Y, X: pos.X + 1}, nil
	}
	return pos, unknownDirection(s, d)
}
