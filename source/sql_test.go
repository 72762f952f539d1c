package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQL(t *testing.T) *SQL {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLResolve(t *testing.T) {
	ctx := context.Background()
	s := openTestSQL(t)

	require.NoError(t, s.Put(ctx, "a", "alpha"))

	v, err := s.Resolve(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "alpha", *v)

	v, err = s.Resolve(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLPutUpserts(t *testing.T) {
	ctx := context.Background()
	s := openTestSQL(t)

	require.NoError(t, s.Put(ctx, "a", "v1"))
	require.NoError(t, s.Put(ctx, "a", "v2"))

	v, err := s.Resolve(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "v2", *v)
}

func TestSQLPutAllAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestSQL(t)

	require.NoError(t, s.PutAll(ctx, nil))
	require.NoError(t, s.PutAll(ctx, []Record{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	}))

	v, err := s.Resolve(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "2", *v)

	require.NoError(t, s.Delete(ctx, "b"))
	v, err = s.Resolve(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, v)
}
