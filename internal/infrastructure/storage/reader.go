package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Лимит строки журнала. Строки рельефа больших тайлов длиннее
// стандартных 64 КиБ сканера.
const maxLineSize = 1 << 20

// Exists сообщает, есть ли журнал на диске.
func (l *CommandLog) Exists() bool {
	_, err := os.Stat(l.Path)
	return err == nil
}

// Lines читает журнал целиком. Пустые строки пропускаются.
func (l *CommandLog) Lines() ([]string, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open command log: %w", err)
	}
	defer f.Close()
	return readLines(f)
}

// ReadSnapshot читает файл снимка.
func (s *FileSnapshotStore) ReadSnapshot() ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return readLines(f)
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var lines []string
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}
