package protocol

import "strings"

// Quote заключает строку в кавычки и экранирует '"' и '\',
// чтобы Tokenize прочитал ее как один токен.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// Tokenize делит сообщение по ' ' и '\n'.
// Участки в кавычках могут содержать пробелы и переводы строк и стоять
// посреди токена; обратный слэш экранирует только внутри кавычек.
// Незакрытая кавычка тянется до конца сообщения.
func Tokenize(msg string) []string {
	var (
		tokens  []string
		token   strings.Builder
		quoted  bool
		escaped bool
		// пустые кавычки "" тоже дают токен
		started bool
	)
	flush := func() {
		if token.Len() > 0 || started {
			tokens = append(tokens, token.String())
		}
		token.Reset()
		started = false
	}
	for _, c := range msg {
		switch {
		case quoted && escaped:
			token.WriteRune(c)
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case quoted && c == '"':
			quoted = false
		case quoted:
			token.WriteRune(c)
		case c == '"':
			quoted = true
			started = true
		case c == ' ' || c == '\n':
			flush()
		default:
			token.WriteRune(c)
		}
	}
	flush()
	return tokens
}
