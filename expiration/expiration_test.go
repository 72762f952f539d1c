package expiration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krisalay/remote-cache/expiration"
	"github.com/krisalay/remote-cache/types"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestExpireAfterWriteExpireAt(t *testing.T) {
	tests := []struct {
		name       string
		defaultTTL time.Duration
		ttl        time.Duration
		want       time.Time
	}{
		{"default with no default ttl", 0, types.DefaultExpiration, time.Time{}},
		{"default ttl applied", time.Minute, types.DefaultExpiration, now.Add(time.Minute)},
		{"never overrides default", time.Minute, types.NoExpiration, time.Time{}},
		{"never without default", 0, types.NoExpiration, time.Time{}},
		{"custom overrides default", time.Minute, 5 * time.Second, now.Add(5 * time.Second)},
		{"custom without default", 0, 5 * time.Second, now.Add(5 * time.Second)},
		{"negative custom is in the past", time.Minute, -time.Second, now.Add(-time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &expiration.ExpireAfterWrite{TTL: tt.defaultTTL}
			assert.Equal(t, tt.want, e.ExpireAt(now, tt.ttl))
		})
	}
}

func TestIsExpired(t *testing.T) {
	exp := now.Add(time.Second)

	assert.False(t, expiration.IsExpired(time.Time{}, now.Add(100*365*24*time.Hour)), "zero expiry never expires")
	assert.False(t, expiration.IsExpired(exp, now))
	assert.False(t, expiration.IsExpired(exp, exp.Add(-time.Nanosecond)))
	assert.True(t, expiration.IsExpired(exp, exp), "stale from the expiry instant on")
	assert.True(t, expiration.IsExpired(exp, exp.Add(time.Hour)))

	var s expiration.Strategy = &expiration.ExpireAfterWrite{}
	assert.Equal(t, expiration.IsExpired(exp, exp), s.IsExpired(exp, exp))
}
