// Package metadata is the key/value store of the local session database.
package metadata

import (
	"context"
)

// Keys written by the session store.
const (
	KeyToken        = "session.token"
	KeyRefreshToken = "session.refresh_token"
)

// Repository stores small opaque values by key. Get returns
// common.ErrorNotFound for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
