package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

// FundingRepository implements domain.FundingRepository over the store.
type FundingRepository struct {
	funding store.Collection[domain.Funding]
}

// NewFundingRepository creates a store-backed FundingRepository.
func NewFundingRepository(s *store.Store) *FundingRepository {
	return &FundingRepository{
		funding: store.NewCollection[domain.Funding](s, store.CollectionFunding),
	}
}

func (r *FundingRepository) Create(ctx context.Context, funding *domain.Funding) error {
	if funding.ID == "" {
		funding.ID = newID("funding")
	}
	if funding.CreatedAt.IsZero() {
		funding.CreatedAt = time.Now().UTC()
	}
	funding.UpdatedAt = funding.CreatedAt

	if err := r.funding.Put(ctx, funding.ID, funding); err != nil {
		return fmt.Errorf("create funding: %w", err)
	}
	return nil
}

func (r *FundingRepository) GetByID(ctx context.Context, id string) (*domain.Funding, error) {
	return r.funding.Get(ctx, id)
}

// GetByProject returns the project's funding commitments, newest first.
func (r *FundingRepository) GetByProject(ctx context.Context, projectID string) ([]domain.Funding, error) {
	var fundings []domain.Funding
	err := r.funding.Scan(ctx, func(_ string, f domain.Funding) error {
		if f.ProjectID == projectID {
			fundings = append(fundings, f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan funding: %w", err)
	}
	sortNewestFirst(fundings, func(f domain.Funding) time.Time { return f.CreatedAt })
	return fundings, nil
}

// Update merges the patch into the stored funding and refreshes UpdatedAt.
func (r *FundingRepository) Update(ctx context.Context, id string, patch domain.FundingPatch) error {
	funding, err := r.funding.Get(ctx, id)
	if err != nil {
		return err
	}

	if patch.Amount != nil {
		funding.Amount = *patch.Amount
	}
	if patch.EquityPercentage != nil {
		funding.EquityPercentage = *patch.EquityPercentage
	}
	if patch.Terms != nil {
		funding.Terms = *patch.Terms
	}
	if patch.Status != nil {
		funding.Status = *patch.Status
	}
	funding.UpdatedAt = time.Now().UTC()

	return r.funding.Put(ctx, id, funding)
}
