package protocol

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/plomlompom/plomrogue2-experiments/internal/core/types"
)

// Типы аргументов в сигнатурах команд.
const (
	TypeIntNonneg    = "int:nonneg"
	TypeYX           = "yx_tuple"
	TypeYXNonneg     = "yx_tuple:nonneg"
	TypeYXPos        = "yx_tuple:pos"
	TypeString       = "string"
	TypeSeqIntNonneg = "seq:int:nonneg"

	stringOptionPrefix = "string:"
)

// OptionSource отдает допустимые значения для string:<kind>.
// ok == false - такого набора нет.
type OptionSource func(kind string) (options []string, ok bool)

// Args - разобранные аргументы: int, types.YX, string или []int,
// в порядке сигнатуры.
type Args []any

// Int - аргумент i как int.
func (a Args) Int(i int) int {
	v, _ := a[i].(int)
	return v
}

// YX - аргумент i как координата.
func (a Args) YX(i int) types.YX {
	v, _ := a[i].(types.YX)
	return v
}

// Str - аргумент i как строка.
func (a Args) Str(i int) string {
	v, _ := a[i].(string)
	return v
}

// Ints - аргумент i как последовательность.
func (a Args) Ints(i int) []int {
	v, _ := a[i].([]int)
	return v
}

// ArgsParse разбирает токены по сигнатуре из типов через пробел.
// Несовпадение количества, значение вне диапазона и неизвестный тип -
// всегда ArgumentError.
func ArgsParse(signature string, tokens []string, options OptionSource) (Args, error) {
	tmpl := strings.Fields(signature)
	if len(tmpl) != len(tokens) {
		return nil, types.ArgErrorf("Number of arguments (%d) not expected number (%d).", len(tokens), len(tmpl))
	}
	args := make(Args, 0, len(tmpl))
	for i, typ := range tmpl {
		arg := tokens[i]
		switch {
		case typ == TypeIntNonneg:
			n, ok := parseNonneg(arg)
			if !ok {
				return nil, types.ArgErrorf("Argument must be non-negative integer.")
			}
			args = append(args, n)
		case typ == TypeYX:
			yx, err := parseYX(arg, rangeAny)
			if err != nil {
				return nil, err
			}
			args = append(args, yx)
		case typ == TypeYXNonneg:
			yx, err := parseYX(arg, rangeNonneg)
			if err != nil {
				return nil, err
			}
			args = append(args, yx)
		case typ == TypeYXPos:
			yx, err := parseYX(arg, rangePos)
			if err != nil {
				return nil, err
			}
			args = append(args, yx)
		case typ == TypeSeqIntNonneg:
			seq, err := parseSeq(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, seq)
		case typ == TypeString:
			args = append(args, arg)
		case strings.HasPrefix(typ, stringOptionPrefix):
			if options == nil {
				return nil, types.ArgErrorf("No string option directory.")
			}
			kind := strings.TrimPrefix(typ, stringOptionPrefix)
			allowed, ok := options(kind)
			if !ok {
				return nil, types.ArgErrorf("Unknown string option type.")
			}
			if !slices.Contains(allowed, arg) {
				return nil, types.ArgErrorf("Argument #%d must be one of: %s", i+1, strings.Join(allowed, ", "))
			}
			args = append(args, arg)
		default:
			return nil, types.ArgErrorf("Unknown argument type.")
		}
	}
	return args, nil
}

type yxRange int

const (
	rangeAny yxRange = iota
	rangeNonneg
	rangePos
)

// parseYX читает "Y:<int>,X:<int>".
func parseYX(s string, r yxRange) (types.YX, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return types.YX{}, types.ArgErrorf("Wrong number of yx-tuple arguments.")
	}
	y, err := parseAxis("Y", parts[0], r)
	if err != nil {
		return types.YX{}, err
	}
	x, err := parseAxis("X", parts[1], r)
	if err != nil {
		return types.YX{}, err
	}
	return types.YX{Y: y, X: x}, nil
}

func parseAxis(axis, token string, r yxRange) (int, error) {
	prefix := axis + ":"
	if !strings.HasPrefix(token, prefix) {
		return 0, types.ArgErrorf("Non-int arg for %s position.", axis)
	}
	digits := token[len(prefix):]
	neg := strings.HasPrefix(digits, "-")
	n, ok := parseNonneg(strings.TrimPrefix(digits, "-"))
	if !ok {
		return 0, types.ArgErrorf("Non-int arg for %s position.", axis)
	}
	if neg {
		n = -n
	}
	switch {
	case r == rangePos && n < 1:
		return 0, types.ArgErrorf("Arg for %s position < 1.", axis)
	case r == rangeNonneg && n < 0:
		return 0, types.ArgErrorf("Arg for %s position < 0.", axis)
	}
	return n, nil
}

// parseNonneg принимает только цифры: без знака, пробелов и точки.
func parseNonneg(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseSeq(arg string) ([]int, error) {
	if arg == "," {
		return []int{}, nil
	}
	parts := strings.Split(arg, ",")
	seq := make([]int, 0, len(parts))
	for _, p := range parts {
		n, ok := parseNonneg(p)
		if !ok {
			return nil, types.ArgErrorf("Argument sequence must only contain non-negative integers.")
		}
		seq = append(seq, n)
	}
	return seq, nil
}

// FormatSeq - обратная к seq:int:nonneg запись: "1,2,3" или "," для пустой.
func FormatSeq(ids []int) string {
	if len(ids) == 0 {
		return ","
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Message собирает строку команды из частей через пробел.
func Message(parts ...any) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprint(p)
	}
	return strings.Join(strs, " ")
}
