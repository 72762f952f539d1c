package expiration

import (
	"time"

	"github.com/krisalay/remote-cache/types"
)

/*
ExpireAfterWrite implements a fixed lifespan measured from the moment a value
is stored. Reads never extend it; only another write does.
*/
type ExpireAfterWrite struct {

	// TTL is the default lifespan. Zero means entries written with
	// DefaultExpiration never expire.
	TTL time.Duration
}

/*
ExpireAt resolves a per-write ttl against the default:
- types.DefaultExpiration → now + TTL, or never when TTL is zero
- types.NoExpiration      → never, regardless of TTL
- anything else           → now + ttl; a negative ttl is already in the past
*/
func (e *ExpireAfterWrite) ExpireAt(now time.Time, ttl time.Duration) time.Time {
	switch ttl {
	case types.NoExpiration:
		return time.Time{}
	case types.DefaultExpiration:
		if e.TTL <= 0 {
			return time.Time{}
		}
		return now.Add(e.TTL)
	default:
		return now.Add(ttl)
	}
}

func (e *ExpireAfterWrite) IsExpired(expireAt, now time.Time) bool {
	return IsExpired(expireAt, now)
}
