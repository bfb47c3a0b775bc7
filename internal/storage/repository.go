package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("storage: not found")
	ErrEmptyKey  = errors.New("storage: empty slot key")
	ErrBadConfig = errors.New("storage: invalid backend config")
)

// SlotStore is a synchronous key-value store holding opaque blobs.
// Get returns ErrNotFound when the key is absent; Delete of an absent key succeeds.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	Close() error
}
