// Package storage persists the trip collection in a single named slot.
package storage

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Slot.Read when nothing was ever written.
var ErrSlotEmpty = errors.New("storage slot is empty")

// Slot is one named durable value, read once at startup and overwritten wholesale.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}
