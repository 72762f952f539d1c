package types

import (
	"fmt"
	"strconv"
)

// Key is the set of key kinds the cache accepts: strings and integers.
type Key interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// KeyString returns the canonical string form of a key. It is used for shard
// selection, single-flight grouping and log fields.
func KeyString[K Key](k K) string {
	switch v := any(k).(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	return fmt.Sprint(k)
}
