package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - общий логгер сервера и бота.
// До вызова Init пишет с настройками logrus по умолчанию.
var Log = logrus.New()

// Init настраивает Log по окружению: LOG_LEVEL (по умолчанию info)
// и LOG_FORMAT (json или text). Вызывается один раз в main и в TestMain.
func Init() {
	Log = New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// New собирает логгер. Неизвестный уровень читается как info.
// stdout занят выводом бота и -replay, поэтому сервер пишет в stderr.
func New(out io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// Component возвращает запись с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
