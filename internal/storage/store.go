// Package storage provides the durable key-value store cart snapshots
// persist into. One key holds one serialized snapshot; writes overwrite,
// never merge.
package storage

import (
	"context"
	"errors"
)

// ErrNoSnapshot indicates the key has no stored snapshot. The cart treats
// it the same as a fresh session.
var ErrNoSnapshot = errors.New("no snapshot")

// Store is a single-writer snapshot store. Each cart session owns exactly
// one key and is the only writer to it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
