package engine

import (
	"time"

	"github.com/plomlompom/plomrogue2-experiments/internal/domain"
)

// Config хранит параметры запуска движка
type Config struct {
	// GameFile - журнал команд. Его повторное исполнение восстанавливает игру,
	// снимок SAVE пишется рядом в GameFile + ".save".
	GameFile string

	// Port - TCP-порт протокола с '$'-кадрами.
	Port int
	// HTTPPort - порт для /ws, /health и /version. Пустая строка отключает.
	HTTPPort string

	// Geometry - "hex" или "square".
	Geometry   string
	ViewRadius int
	// TaskTodo - сколько ходов мира занимает новая задача.
	TaskTodo int

	// AutosaveEvery - период автосохранения, 0 отключает.
	AutosaveEvery time.Duration
	// PostgresDSN - куда дублировать снимки. Пустая строка отключает.
	PostgresDSN string

	// DefaultWorld выполняется, если журнала еще нет.
	DefaultWorld string
	// InboxSize - буфер общей входящей очереди.
	InboxSize int
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		Port:         5000,
		Geometry:     "hex",
		ViewRadius:   domain.DefaultViewRadius,
		TaskTodo:     domain.DefaultTaskTodo,
		DefaultWorld: "GEN_WORLD Y:16,X:16 bar",
		InboxSize:    256,
	}
}
