package world

import (
	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
	"github.com/plomlompom/plomrogue2-experiments/internal/systems"
	"github.com/sirupsen/logrus"
)

// DecideTask выбирает задачу для вещи под управлением ИИ.
//
// По приоритету: съесть еду из инвентаря, подобрать еду рядом,
// идти к ближайшей видимой еде. Если ничего не вышло - ошибка,
// и вызывающий ставит WAIT.
func (t *Thing) DecideTask() error {
	aiLogger := t.world.log.WithFields(logrus.Fields{
		"component": "ai",
		"thing":     t.ID,
	})

	// 1. Еда в инвентаре
	for _, id := range t.Inventory {
		if item := t.world.GetThing(id); item != nil && item.Type == domain.ThingFood {
			aiLogger.WithField("target", id).Debug("Decided to eat.")
			return t.SetTask(TaskEat, TaskArgs{ThingID: id})
		}
	}

	// 2. Еда в досягаемости
	for _, id := range t.PickableItems() {
		if item := t.world.GetThing(id); item != nil && item.Type == domain.ThingFood {
			aiLogger.WithField("target", id).Debug("Decided to pick up.")
			return t.SetTask(TaskPickup, TaskArgs{ThingID: id})
		}
	}

	// 3. Путь к видимой еде
	var targets []types.YX
	for _, other := range t.VisibleThings() {
		if other.Type == domain.ThingFood {
			targets = append(targets, t.WindowPos(other.Position))
		}
	}
	if len(targets) > 0 {
		dir, ok := systems.NextStepTowards(t.VisibleMap(), t.WindowPos(t.Position), targets)
		if ok {
			aiLogger.WithField("direction", dir).Debug("Decided to move towards food.")
			return t.SetTask(TaskMove, TaskArgs{Direction: dir})
		}
	}

	return types.GameErrorf("%d found nothing to do", t.ID)
}
