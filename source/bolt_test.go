package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBolt(t *testing.T) *Bolt {
	t.Helper()
	b, err := OpenBolt(filepath.Join(t.TempDir(), "test.bbolt"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBoltResolve(t *testing.T) {
	ctx := context.Background()
	b := openTestBolt(t)

	require.NoError(t, b.Put("a", []byte("alpha")))

	v, err := b.Resolve(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), v)

	v, err = b.Resolve(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, b.Delete("a"))
	v, err = b.Resolve(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestBoltEmptyValueIsNotMissing(t *testing.T) {
	b := openTestBolt(t)
	require.NoError(t, b.Put("empty", []byte{}))

	v, err := b.Resolve(context.Background(), "empty")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}

func TestBoltResolveCanceled(t *testing.T) {
	b := openTestBolt(t)
	require.NoError(t, b.Put("a", []byte("alpha")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Resolve(ctx, "a")
	require.ErrorIs(t, err, context.Canceled)
}

func TestBoltCloseNil(t *testing.T) {
	var b *Bolt
	assert.NoError(t, b.Close())
}
