package domain

import (
	"context"
	"time"
)

// DataRecord is a generic per-user key-value extension point. Value is an
// opaque payload; anything the binary codec round-trips is legal.
type DataRecord struct {
	ID        string
	UserID    string
	Key       string
	Value     any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DataRecordPatch is a partial update to a data record.
type DataRecordPatch struct {
	Key   *string
	Value *any
}

// DataRecordRepository defines persistence operations for data records.
// Records are stored under their owning user's id; GetByID is a linear
// scan (there is no record-id index).
type DataRecordRepository interface {
	Create(ctx context.Context, record *DataRecord) error
	GetByID(ctx context.Context, id string) (*DataRecord, error)
	GetByUser(ctx context.Context, userID string) ([]DataRecord, error)
	Update(ctx context.Context, id string, patch DataRecordPatch) error
	Delete(ctx context.Context, id string) error
}

// Stats summarizes record counts across the core collections.
type Stats struct {
	Users       int
	Sessions    int
	DataRecords int
}

// StatsRepository reports storage-wide counters.
type StatsRepository interface {
	Stats(ctx context.Context) (Stats, error)
}
