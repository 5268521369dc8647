package domain

import (
	"context"
	"time"
)

// IdeaStatus tracks an idea through its funding lifecycle.
type IdeaStatus string

const (
	IdeaStatusDraft      IdeaStatus = "draft"
	IdeaStatusActive     IdeaStatus = "active"
	IdeaStatusFunded     IdeaStatus = "funded"
	IdeaStatusInProgress IdeaStatus = "in-progress"
	IdeaStatusCompleted  IdeaStatus = "completed"
)

// Idea is a proposed venture posted by a creator. NFTTokenID is an opaque
// reference into the on-chain token service; the core never interprets it.
type Idea struct {
	ID                    string
	CreatorID             string
	Title                 string
	Description           string
	Category              string
	Tags                  []string
	FeasibilityScore      int // 0-100
	MarketSize            string
	CompetitionLevel      string
	DevelopmentComplexity string
	FundingRequired       float64
	EquityOffered         float64
	Status                IdeaStatus
	NFTTokenID            string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IdeaPatch is a partial update to an idea. Nil fields are left unchanged.
type IdeaPatch struct {
	Title                 *string
	Description           *string
	Category              *string
	Tags                  *[]string
	FeasibilityScore      *int
	MarketSize            *string
	CompetitionLevel      *string
	DevelopmentComplexity *string
	FundingRequired       *float64
	EquityOffered         *float64
	Status                *IdeaStatus
	NFTTokenID            *string
}

// IdeaRepository defines persistence operations for ideas. Listings are
// sorted by CreatedAt descending at query time; the store's key order
// carries no chronological meaning.
type IdeaRepository interface {
	Create(ctx context.Context, idea *Idea) error
	GetByID(ctx context.Context, id string) (*Idea, error)
	GetByCreator(ctx context.Context, creatorID string) ([]Idea, error)
	GetAll(ctx context.Context) ([]Idea, error)
	Update(ctx context.Context, id string, patch IdeaPatch) error
}
