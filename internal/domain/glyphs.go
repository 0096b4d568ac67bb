package domain

import "github.com/plomlompom/plomrogue2-experiments/internal/core/types"

var thingGlyphs = map[ThingType]types.Glyph{
	ThingHuman:   types.MakeGlyph(0xFFFFFF, '@'),
	ThingMonster: types.MakeGlyph(0xFF4040, 'm'),
	ThingFood:    types.MakeGlyph(0x40FF40, 'f'),
}

var terrainGlyphs = map[rune]types.Glyph{
	TerrainFloor: types.MakeGlyph(0x808080, TerrainFloor),
	TerrainWater: types.MakeGlyph(0x4080FF, TerrainWater),
	TerrainRock:  types.MakeGlyph(0xA0A0A0, TerrainRock),
	TerrainWall:  types.MakeGlyph(0xC0A060, TerrainWall),
}

// ThingGlyph - как рисовать вещь; неизвестный тип - '?'.
func ThingGlyph(t ThingType) types.Glyph {
	if g, ok := thingGlyphs[t]; ok {
		return g
	}
	return types.MakeGlyph(0xFFFF00, '?')
}

// TerrainGlyph - как рисовать клетку рельефа; прочее рисуется как есть, серым.
func TerrainGlyph(c rune) types.Glyph {
	if g, ok := terrainGlyphs[c]; ok {
		return g
	}
	return types.MakeGlyph(0x404040, byte(c))
}
