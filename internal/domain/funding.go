package domain

import (
	"context"
	"time"
)

// FundingStatus tracks an individual funding commitment.
type FundingStatus string

const (
	FundingStatusPending   FundingStatus = "pending"
	FundingStatusApproved  FundingStatus = "approved"
	FundingStatusRejected  FundingStatus = "rejected"
	FundingStatusCompleted FundingStatus = "completed"
)

// Funding is a funder's commitment to a project.
type Funding struct {
	ID               string
	ProjectID        string
	FunderID         string
	Amount           float64
	EquityPercentage float64
	Terms            string
	Status           FundingStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FundingPatch is a partial update to a funding commitment.
type FundingPatch struct {
	Amount           *float64
	EquityPercentage *float64
	Terms            *string
	Status           *FundingStatus
}

// FundingRepository defines persistence operations for funding commitments.
type FundingRepository interface {
	Create(ctx context.Context, funding *Funding) error
	GetByID(ctx context.Context, id string) (*Funding, error)
	GetByProject(ctx context.Context, projectID string) ([]Funding, error)
	Update(ctx context.Context, id string, patch FundingPatch) error
}
