package storage

import (
	"context"
	"errors"
)

var ErrNoKey = errors.New("storage: key not found")

// Snapshot keys. Each key holds an independent JSON document.
const (
	KeyHabits  = "habits"
	KeyStreak  = "streak"
	KeyNotes   = "notes"
	KeySession = "session"
)

// Store is a durable key-value store for JSON snapshots. Get returns
// ErrNoKey when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
