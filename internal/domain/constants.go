package domain

// ThingType - тег типа сущности.
type ThingType string

// Типы сущностей
const (
	ThingHuman   ThingType = "human"
	ThingMonster ThingType = "monster"
	ThingFood    ThingType = "food"

	// ThingUnknown - вещь, созданная по id до того, как пришел ее тип.
	ThingUnknown ThingType = "?"
)

// ThingKind - свойства, которые раньше задавались наследованием.
type ThingKind struct {
	Animate  bool // есть здоровье и задачи
	Blocking bool // мешает движению
	Item     bool // можно подобрать
	Health   int  // начальное здоровье для Animate
}

var thingKinds = map[ThingType]ThingKind{
	ThingHuman:   {Animate: true, Blocking: true, Health: 100},
	ThingMonster: {Animate: true, Blocking: true, Health: 50},
	ThingFood:    {Item: true},
}

// KindOf возвращает свойства типа. Для неизвестного типа - нулевые свойства
// (неживая проходимая вещь).
func KindOf(t ThingType) ThingKind {
	return thingKinds[t]
}

// ThingTypeNames - имена типов для string:thingtype.
func ThingTypeNames() []string {
	return []string{string(ThingFood), string(ThingHuman), string(ThingMonster)}
}

// Параметры игры
const (
	DefaultViewRadius = 8
	DefaultTaskTodo   = 3
	EatHealthGain     = 50
)
