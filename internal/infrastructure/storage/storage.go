package storage

import (
	"context"
	"time"
)

// Snapshot — состояние мира в виде команд протокола.
type Snapshot struct {
	Turn      int
	Lines     []string
	CreatedAt time.Time
}

// SnapshotStore — место, куда SAVE и автосохранение кладут снимки.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	Close() error
}
