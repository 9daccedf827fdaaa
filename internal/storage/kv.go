// Package storage provides the key-value persistence layer for the ledger.
//
// Values are opaque byte slices. Writes are last-write-wins and a SetMulti
// call is all-or-nothing: readers never observe some keys of a batch updated
// and others not.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the contract every backend implements.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMulti(ctx context.Context, entries map[string][]byte) error
	Close() error
}

var (
	_ KV = (*SQLiteStorage)(nil)
	_ KV = (*MemoryStorage)(nil)
	_ KV = (*RedisStorage)(nil)
)
