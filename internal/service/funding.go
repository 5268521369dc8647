package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// FundingService manages funding commitments. A commitment may be updated
// by its funder or by the executor of the funded project.
type FundingService struct {
	funding  domain.FundingRepository
	projects domain.ProjectRepository
}

// NewFundingService creates a FundingService.
func NewFundingService(funding domain.FundingRepository, projects domain.ProjectRepository) *FundingService {
	return &FundingService{funding: funding, projects: projects}
}

// CreateFundingInput carries a new funding commitment's fields.
type CreateFundingInput struct {
	ProjectID        string
	Amount           float64
	EquityPercentage float64
	Terms            string
}

// Create validates and stores a pending funding commitment by funderID.
func (s *FundingService) Create(ctx context.Context, funderID string, in CreateFundingInput) (*domain.Funding, error) {
	if funderID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ProjectID == "" || in.Amount <= 0 || in.EquityPercentage <= 0 {
		return nil, fmt.Errorf("%w: project id, amount, and equity percentage are required", domain.ErrInvalidInput)
	}

	funding := &domain.Funding{
		ProjectID:        in.ProjectID,
		FunderID:         funderID,
		Amount:           in.Amount,
		EquityPercentage: in.EquityPercentage,
		Terms:            in.Terms,
		Status:           domain.FundingStatusPending,
	}
	if err := s.funding.Create(ctx, funding); err != nil {
		return nil, err
	}
	return funding, nil
}

// GetByProject lists a project's funding commitments, newest first.
func (s *FundingService) GetByProject(ctx context.Context, projectID string) ([]domain.Funding, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is required", domain.ErrInvalidInput)
	}
	return s.funding.GetByProject(ctx, projectID)
}

// Update applies a patch to a commitment. Allowed for the funder and for
// the funded project's executor; a dangling project reference leaves only
// the funder authorized.
func (s *FundingService) Update(ctx context.Context, callerID, fundingID string, patch domain.FundingPatch) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	funding, err := s.funding.GetByID(ctx, fundingID)
	if err != nil {
		return err
	}

	allowed := funding.FunderID == callerID
	if !allowed {
		project, err := s.projects.GetByID(ctx, funding.ProjectID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		allowed = err == nil && project.ExecutorID == callerID
	}
	if !allowed {
		return domain.ErrAccessDenied
	}

	return s.funding.Update(ctx, fundingID, patch)
}
