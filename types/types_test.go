package types

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userID int64

type region string

func TestKeyString(t *testing.T) {
	assert.Equal(t, "abc", KeyString("abc"))
	assert.Equal(t, "42", KeyString(42))
	assert.Equal(t, "-7", KeyString(int64(-7)))
	assert.Equal(t, "18446744073709551615", KeyString(uint64(1<<64-1)))
	assert.Equal(t, "9", KeyString(uint8(9)))
	assert.Equal(t, "1001", KeyString(userID(1001)))
	assert.Equal(t, "eu-west", KeyString(region("eu-west")))
}

func TestResolverFunc(t *testing.T) {
	var r Resolver[string, int] = ResolverFunc[string, int](func(ctx context.Context, key string) (int, error) {
		return len(key), nil
	})
	v, err := r.Resolve(context.Background(), "four")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestResolveErrorUnwraps(t *testing.T) {
	cause := errors.New("upstream down")
	err := fmt.Errorf("outer: %w", &ResolveError{Key: "k", Err: cause})

	assert.ErrorIs(t, err, cause)
	var rerr *ResolveError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "k", rerr.Key)
	assert.Contains(t, err.Error(), `resolving key "k": upstream down`)
}

func TestNoopMetrics(t *testing.T) {
	var m Metrics = NoopMetrics{}
	m.Hit()
	m.Miss()
	m.Expire()
	m.Reload()
	m.ResolveFailure()
	m.ObserveResolve(0)
}
