package source

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/remote-cache"
	"github.com/krisalay/remote-cache/types"
)

func TestCacheKeepsMissingSQLKey(t *testing.T) {
	ctx := context.Background()
	s := openTestSQL(t)
	require.NoError(t, s.Put(ctx, "a", "alpha"))

	var calls atomic.Int64
	c, err := cache.New(cache.Options[string, *string]{
		Resolver: types.ResolverFunc[string, *string](func(ctx context.Context, key string) (*string, error) {
			calls.Add(1)
			return s.Resolve(ctx, key)
		}),
		TTL:             time.Minute,
		PropagateErrors: true,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	}
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 1, c.Size())

	v, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "alpha", *v)
}

func TestCacheKeepsMissingBoltKey(t *testing.T) {
	ctx := context.Background()
	b := openTestBolt(t)

	var calls atomic.Int64
	c, err := cache.New(cache.Options[string, []byte]{
		Resolver: types.ResolverFunc[string, []byte](func(ctx context.Context, key string) ([]byte, error) {
			calls.Add(1)
			return b.Resolve(ctx, key)
		}),
		PropagateErrors: true,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	}
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 1, c.Size())
}
