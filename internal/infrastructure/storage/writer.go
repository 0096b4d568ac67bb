package storage

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotSuffix — суффикс файла снимка рядом с журналом.
const SnapshotSuffix = ".save"

// CommandLog — журнал команд: по одной строке протокола на команду.
// Повторное исполнение журнала восстанавливает игру.
type CommandLog struct {
	Path string
}

func NewCommandLog(path string) *CommandLog {
	return &CommandLog{Path: path}
}

// Append дописывает строку в конец журнала.
func (l *CommandLog) Append(line string) error {
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open command log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append to command log: %w", err)
	}
	return nil
}

// FileSnapshotStore пишет снимок в <журнал>.save.
// Формат тот же, что у журнала, так что снимок можно запускать как игру.
type FileSnapshotStore struct {
	Path string
}

func NewFileSnapshotStore(gameFile string) *FileSnapshotStore {
	return &FileSnapshotStore{Path: gameFile + SnapshotSuffix}
}

// SaveSnapshot пишет во временный файл и переименовывает его,
// чтобы оборванная запись не портила прошлый снимок.
func (s *FileSnapshotStore) SaveSnapshot(_ context.Context, snap Snapshot) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(strings.Join(snap.Lines, "\n") + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshotStore) Close() error { return nil }
