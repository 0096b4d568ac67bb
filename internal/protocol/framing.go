package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Служебные байты кадра.
const (
	Delimiter = '$'
	Escape    = '\\'
)

// MaxFrameSize - предел длины сообщения без экранирования.
const MaxFrameSize = 64 * 1024

// ErrMalformed - кадр получен целиком, но его байты не являются UTF-8.
// Поток при этом не ломается: следующий Next читает следующий кадр.
var ErrMalformed = errors.New("malformed message")

// ErrTooLong - кадр длиннее MaxFrameSize. Остаток кадра до '$'
// пропускается без буферизации. Это частный случай ErrMalformed.
var ErrTooLong = fmt.Errorf("%w: longer than %d bytes", ErrMalformed, MaxFrameSize)

// Frame экранирует '\' и '$' и дописывает разделитель.
func Frame(msg string) []byte {
	out := make([]byte, 0, len(msg)+1)
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c == Escape || c == Delimiter {
			out = append(out, Escape)
		}
		out = append(out, c)
	}
	return append(out, Delimiter)
}

// Reader режет поток байтов на сообщения по неэкранированному '$'.
// Границы чтения из нижележащего io.Reader могут быть любыми.
type Reader struct {
	r   *bufio.Reader
	msg bytes.Buffer
}

// NewReader оборачивает поток.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next возвращает следующее сообщение.
// io.EOF - поток закончился (незавершенный хвост отбрасывается),
// ErrMalformed - кадр не декодируется как текст,
// ErrTooLong - кадр превысил MaxFrameSize.
func (fr *Reader) Next() (string, error) {
	fr.msg.Reset()
	escaped := false
	overflow := false
	for {
		c, err := fr.r.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case escaped:
			escaped = false
		case c == Escape:
			escaped = true
			continue
		case c == Delimiter:
			if overflow {
				return "", ErrTooLong
			}
			if !utf8.Valid(fr.msg.Bytes()) {
				return "", ErrMalformed
			}
			return fr.msg.String(), nil
		}
		if overflow {
			continue
		}
		if fr.msg.Len() >= MaxFrameSize {
			overflow = true
			fr.msg.Reset()
			continue
		}
		fr.msg.WriteByte(c)
	}
}
