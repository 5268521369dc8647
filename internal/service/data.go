package service

import (
	"context"
	"fmt"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// DataService manages per-user data records. Records are private: reads
// and writes by anyone but the owner are denied without revealing whether
// the record exists.
type DataService struct {
	records domain.DataRecordRepository
}

// NewDataService creates a DataService.
func NewDataService(records domain.DataRecordRepository) *DataService {
	return &DataService{records: records}
}

// Create stores a new record under the caller's id.
func (s *DataService) Create(ctx context.Context, callerID, key string, value any) (*domain.DataRecord, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if key == "" || value == nil {
		return nil, fmt.Errorf("%w: key and value are required", domain.ErrInvalidInput)
	}

	record := &domain.DataRecord{
		UserID: callerID,
		Key:    key,
		Value:  value,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns a record the caller owns.
func (s *DataService) Get(ctx context.Context, callerID, recordID string) (*domain.DataRecord, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if callerID != "" && record.UserID != callerID {
		return nil, domain.ErrAccessDenied
	}
	return record, nil
}

// GetByUser lists the caller's records, newest first.
func (s *DataService) GetByUser(ctx context.Context, callerID string) ([]domain.DataRecord, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.records.GetByUser(ctx, callerID)
}

// Update applies a patch to a record the caller owns.
func (s *DataService) Update(ctx context.Context, callerID, recordID string, patch domain.DataRecordPatch) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record.UserID != callerID {
		return domain.ErrAccessDenied
	}
	return s.records.Update(ctx, recordID, patch)
}

// Delete removes a record the caller owns.
func (s *DataService) Delete(ctx context.Context, callerID, recordID string) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record.UserID != callerID {
		return domain.ErrAccessDenied
	}
	return s.records.Delete(ctx, recordID)
}
