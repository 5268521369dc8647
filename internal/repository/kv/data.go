package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

// DataRecordRepository implements domain.DataRecordRepository. Records
// live in a duplicate-capable collection keyed by their owning user, so a
// user holds any number of records and deleting the user purges them all
// by key. Lookup by record id is a linear scan; there is no id index.
type DataRecordRepository struct {
	store *store.Store
	data  store.DupCollection[domain.DataRecord]
}

// NewDataRecordRepository creates a store-backed DataRecordRepository.
func NewDataRecordRepository(s *store.Store) *DataRecordRepository {
	return &DataRecordRepository{
		store: s,
		data:  store.NewDupCollection[domain.DataRecord](s, store.CollectionData),
	}
}

func (r *DataRecordRepository) Create(ctx context.Context, record *domain.DataRecord) error {
	if record.ID == "" {
		record.ID = newID("data")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.UpdatedAt = record.CreatedAt

	if err := r.data.Add(ctx, record.UserID, record); err != nil {
		return fmt.Errorf("create data record: %w", err)
	}
	return nil
}

func (r *DataRecordRepository) GetByID(ctx context.Context, id string) (*domain.DataRecord, error) {
	var found *domain.DataRecord
	err := r.data.Scan(ctx, func(_ string, rec domain.DataRecord) error {
		if rec.ID == id {
			found = &rec
			return errStopScan
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopScan) {
		return nil, fmt.Errorf("scan data records: %w", err)
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

// GetByUser returns the user's records, newest first.
func (r *DataRecordRepository) GetByUser(ctx context.Context, userID string) ([]domain.DataRecord, error) {
	records, err := r.data.Values(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("data records by user: %w", err)
	}
	sortNewestFirst(records, func(rec domain.DataRecord) time.Time { return rec.CreatedAt })
	return records, nil
}

// Update merges the patch into the stored record. Under duplicate-capable
// storage a re-put would leave the old value behind, so the replacement is
// an atomic remove-and-add.
func (r *DataRecordRepository) Update(ctx context.Context, id string, patch domain.DataRecordPatch) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	updated := *existing
	if patch.Key != nil {
		updated.Key = *patch.Key
	}
	if patch.Value != nil {
		updated.Value = *patch.Value
	}
	updated.UpdatedAt = time.Now().UTC()

	err = r.store.RunAtomic(ctx, func(tx *store.Tx) error {
		if err := r.data.RemoveValueTx(tx, existing.UserID, existing); err != nil {
			return err
		}
		return r.data.AddTx(tx, updated.UserID, &updated)
	})
	if err != nil {
		return fmt.Errorf("update data record: %w", err)
	}
	return nil
}

func (r *DataRecordRepository) Delete(ctx context.Context, id string) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.data.RemoveValue(ctx, record.UserID, record); err != nil {
		return fmt.Errorf("delete data record: %w", err)
	}
	return nil
}
