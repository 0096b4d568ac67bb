package utils

import (
	"hash/fnv"
	"strconv"
)

// SeedFromString переводит сид мира в int64.
// Целое число берется как есть, любая другая строка хэшируется (FNV-1a),
// поэтому "bar" и "42" одинаково годятся для GEN_WORLD.
func SeedFromString(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// TileSeed выводит сид отдельного тайла из сида мира и координаты тайла.
// Один и тот же тайл всегда генерируется одинаково, в каком бы порядке
// тайлы ни материализовались.
func TileSeed(seed int64, y, x int) int64 {
	h := fnv.New64a()
	var buf [24]byte
	putInt64(buf[0:8], seed)
	putInt64(buf[8:16], int64(y))
	putInt64(buf[16:24], int64(x))
	_, _ = h.Write(buf[:])
	return int64(h.Sum64())
}

func putInt64(b []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
}
