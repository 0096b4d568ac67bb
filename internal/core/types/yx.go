package types

import "fmt"

// YX - пара координат (строка, столбец).
//
// Используется и как позиция клетки внутри карты, и как координата
// тайла в многотайловом мире, и как размер карты (высота, ширина).
type YX struct {
	Y int
	X int
}

// Add складывает координаты покомпонентно.
func (p YX) Add(o YX) YX {
	return YX{Y: p.Y + o.Y, X: p.X + o.X}
}

// Sub вычитает координаты покомпонентно.
func (p YX) Sub(o YX) YX {
	return YX{Y: p.Y - o.Y, X: p.X - o.X}
}

// Area возвращает количество клеток для YX, трактуемого как размер.
func (p YX) Area() int {
	return p.Y * p.X
}

// Contains проверяет, лежит ли pos внутри прямоугольника размера p.
func (p YX) Contains(pos YX) bool {
	return pos.Y >= 0 && pos.X >= 0 && pos.Y < p.Y && pos.X < p.X
}

// String сериализует координаты в формат протокола: "Y:<y>,X:<x>".
func (p YX) String() string {
	return fmt.Sprintf("Y:%d,X:%d", p.Y, p.X)
}

// Position - позиция в многотайловом мире.
//
// Big адресует тайл (карту фиксированного размера) в разреженной сетке тайлов,
// Small - смещение внутри тайла. Инвариант: Small всегда в [0, size) по обеим осям.
type Position struct {
	Big   YX
	Small YX
}

// String для логов: "Y:0,X:0 Y:3,X:4"
func (p Position) String() string {
	return p.Big.String() + " " + p.Small.String()
}

// Normalize переносит выход Small за границы тайла в координату Big.
// Работает для любых смещений, в том числе больше размера тайла.
func (p Position) Normalize(tileSize YX) Position {
	by, sy := wrapAxis(p.Big.Y, p.Small.Y, tileSize.Y)
	bx, sx := wrapAxis(p.Big.X, p.Small.X, tileSize.X)
	return Position{Big: YX{Y: by, X: bx}, Small: YX{Y: sy, X: sx}}
}

// Global возвращает абсолютные координаты клетки (как если бы все тайлы были одной картой).
func (p Position) Global(tileSize YX) YX {
	return YX{
		Y: p.Big.Y*tileSize.Y + p.Small.Y,
		X: p.Big.X*tileSize.X + p.Small.X,
	}
}

// PositionFromGlobal - обратное преобразование к Global.
func PositionFromGlobal(global YX, tileSize YX) Position {
	return Position{Small: global}.Normalize(tileSize)
}

func wrapAxis(big, small, size int) (int, int) {
	if size <= 0 {
		return big, small
	}
	shift := small / size
	small = small % size
	if small < 0 {
		small += size
		shift--
	}
	return big + shift, small
}
