package types

import "fmt"

// ArgumentError - синтаксически неверная команда или аргумент вне диапазона.
// Вина вызывающего; ответ уходит только ему.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

// GameError - команда корректна, но её эффект сейчас невозможен
// (шаг в стену, действие после смерти и т.п.). Состояние мира не меняется.
type GameError struct {
	Msg string
}

func (e *GameError) Error() string { return e.Msg }

// ArgErrorf создает ArgumentError с форматированным сообщением.
func ArgErrorf(format string, args ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// GameErrorf создает GameError с форматированным сообщением.
func GameErrorf(format string, args ...any) error {
	return &GameError{Msg: fmt.Sprintf(format, args...)}
}
