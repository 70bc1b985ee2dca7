// Package cartstorage provides the durable blob slot carts are persisted
// to. Each slot holds one full serialized cart; writes always replace the
// whole value.
package cartstorage

import (
	"context"
	"errors"
)

// ErrNotFound indicates the slot has never been written or was deleted.
var ErrNotFound = errors.New("cart storage: not found")

type Storage interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
