// Package state persists lineage snapshots to a local SQLite database
// so that `sqlbridge lineage --save` results can be browsed later with
// `sqlbridge history`.
package state

import (
	"context"
	"time"
)

// Snapshot is one saved lineage extraction for a source.
type Snapshot struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Dialect   string    `json:"dialect"`
	CreatedAt time.Time `json:"created_at"`
	Tables    []string  `json:"tables"`
	Columns   []string  `json:"columns"`
}

// Store persists lineage snapshots.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]*Snapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error
	Close() error
}
