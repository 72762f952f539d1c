package types

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoResolver is returned by the constructor when no resolver is set.
	ErrNoResolver = errors.New("cache: creating a cache requires a resolver")

	// ErrInvalidOptions is wrapped with the offending field when an option
	// is out of range.
	ErrInvalidOptions = errors.New("cache: invalid options")
)

// ResolveError reports a failed resolver call for one key. The cache has
// already evicted the key by the time a caller sees it.
type ResolveError struct {
	Key string
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cache: resolving key %q: %v", e.Key, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }
