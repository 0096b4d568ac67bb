package geometry

import "github.com/plomlompom/plomrogue2-experiments/internal/core/types"

var hexDirections = sortedDirections(UpLeft, UpRight, Left, Right, DownLeft, DownRight)

// Порядок обхода кольца: начинаем справа от центра и идём против часовой.
var hexCircleOut = [][]Direction{
	{DownLeft}, {Left}, {UpLeft}, {UpRight}, {Right}, {DownRight},
}

// Hex - гексагональная сетка в offset-координатах.
// Нечётные строки сдвинуты на полклетки влево относительно чётных.
type Hex struct{}

func (Hex) Name() string { return "hex" }

func (Hex) Directions() []Direction {
	out := make([]Direction, len(hexDirections))
	copy(out, hexDirections)
	return out
}

func (Hex) CircleOut() [][]Direction { return hexCircleOut }

func (h Hex) Move(pos types.YX, d Direction) (types.YX, error) {
	odd := pos.Y%2 != 0
	switch d {
	case Left:
		return types.YX{Y: pos.Y, X: pos.X - 1}, nil
	case Right:
		return types.YX{Y: pos.Y, X: pos.X + 1}, nil
	case UpLeft:
		if odd {
			return types.YX{Y: pos.Y - 1, X: pos.X - 1}, nil
		}
		return types.YX{Y: pos.Y - 1, X: pos.X}, nil
	case UpRight:
		if odd {
			return types.YX{Y: pos.Y - 1, X: pos.X}, nil
		}
		return types.YX{Y: pos.Y - 1, X: pos.X + 1}, nil
	case DownLeft:
		if odd {
			return types.YX{Y: pos.Y + 1, X: pos.X - 1}, nil
		}
		return types.YX{Y: pos.Y + 1, X: pos.X}, nil
	case DownRight:
		if odd {
			return types.YX{Y: pos.Y + 1, X: pos.X}, nil
		}
		return types.YX{Y: pos.Y + 1, X: pos.X + 1}, nil
	}
	return pos, unknownDirection(h, d)
}
