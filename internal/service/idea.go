package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ideaforge-io/ideaforge/internal/agent"
	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// IdeaService manages idea lifecycle and enforces creator ownership.
type IdeaService struct {
	ideas  domain.IdeaRepository
	oracle agent.Oracle
}

// NewIdeaService creates an IdeaService. oracle may be nil; without one,
// ideas are stored with whatever assessment the caller supplied.
func NewIdeaService(ideas domain.IdeaRepository, oracle agent.Oracle) *IdeaService {
	return &IdeaService{ideas: ideas, oracle: oracle}
}

// CreateIdeaInput carries a new idea's fields.
type CreateIdeaInput struct {
	Title                 string
	Description           string
	Category              string
	Tags                  []string
	FeasibilityScore      int
	MarketSize            string
	CompetitionLevel      string
	DevelopmentComplexity string
	FundingRequired       float64
	EquityOffered         float64
	NFTTokenID            string
}

// Create validates and stores a new draft idea for creatorID. When an
// oracle is configured and the caller supplied no assessment, the oracle's
// scoring fills it in; oracle failure never fails the write.
func (s *IdeaService) Create(ctx context.Context, creatorID string, in CreateIdeaInput) (*domain.Idea, error) {
	if creatorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Title == "" || in.Description == "" || in.Category == "" {
		return nil, fmt.Errorf("%w: title, description, and category are required", domain.ErrInvalidInput)
	}

	idea := &domain.Idea{
		CreatorID:             creatorID,
		Title:                 in.Title,
		Description:           in.Description,
		Category:              in.Category,
		Tags:                  in.Tags,
		FeasibilityScore:      in.FeasibilityScore,
		MarketSize:            in.MarketSize,
		CompetitionLevel:      in.CompetitionLevel,
		DevelopmentComplexity: in.DevelopmentComplexity,
		FundingRequired:       in.FundingRequired,
		EquityOffered:         in.EquityOffered,
		Status:                domain.IdeaStatusDraft,
		NFTTokenID:            in.NFTTokenID,
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	if idea.MarketSize == "" {
		idea.MarketSize = "Unknown"
	}
	if idea.CompetitionLevel == "" {
		idea.CompetitionLevel = "Unknown"
	}
	if idea.DevelopmentComplexity == "" {
		idea.DevelopmentComplexity = "Unknown"
	}

	if s.oracle != nil && in.FeasibilityScore == 0 {
		if assessment, err := s.oracle.ValidateIdea(ctx, agent.IdeaValidationRequest{
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
		}); err == nil {
			idea.FeasibilityScore = assessment.FeasibilityScore
			idea.MarketSize = assessment.MarketSize
			idea.CompetitionLevel = assessment.CompetitionLevel
			idea.DevelopmentComplexity = assessment.DevelopmentComplexity
		} else {
			slog.Warn("idea assessment skipped", "error", err)
		}
	}

	if err := s.ideas.Create(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

// GetByID returns an idea. Ideas are publicly readable.
func (s *IdeaService) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	return s.ideas.GetByID(ctx, id)
}

// GetByCreator lists a creator's ideas, newest first. An empty creatorID
// means the caller's own.
func (s *IdeaService) GetByCreator(ctx context.Context, callerID, creatorID string) ([]domain.Idea, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if creatorID == "" {
		creatorID = callerID
	}
	return s.ideas.GetByCreator(ctx, creatorID)
}

// GetAll lists every idea, newest first.
func (s *IdeaService) GetAll(ctx context.Context) ([]domain.Idea, error) {
	return s.ideas.GetAll(ctx)
}

// Update applies a patch to an idea the caller created. Non-creators get
// ErrAccessDenied and the stored idea is left untouched.
func (s *IdeaService) Update(ctx context.Context, callerID, ideaID string, patch domain.IdeaPatch) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}
	if idea.CreatorID != callerID {
		return domain.ErrAccessDenied
	}
	return s.ideas.Update(ctx, ideaID, patch)
}
