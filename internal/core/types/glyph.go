package types

import "fmt"

// Glyph - символ с цветом, упакованные в uint32:
//
//	[0:8]  - ASCII-символ, маска 0xFF
//	[8:32] - RGB-цвет, маска 0xFFFFFF
type Glyph uint32

const (
	bitsChar   = 8
	bitsColor  = 24
	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1
	maskColor = (1 << bitsColor) - 1
)

// MakeGlyph упаковывает цвет 0xRRGGBB и символ.
// Лишние старшие биты обоих аргументов отбрасываются.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color - цвет в формате 0xRRGGBB.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

// Char - символ.
func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// ANSI - символ в 24-битной ANSI-раскраске для терминала.
func (g Glyph) ANSI() string {
	c := g.Color()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%c\x1b[0m", c>>16&0xFF, c>>8&0xFF, c&0xFF, g.Char())
}

// String - "Glyph{char='@', color=#FFFFFF}". Непечатаемые символы в hex.
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=#%06X}", charStr, g.Color())
}
