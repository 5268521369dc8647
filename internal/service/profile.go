package service

import (
	"context"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// ProfileService exposes public user profiles and per-user activity
// stats. Profile responses never include credential material; the handler
// layer's DTOs drop the password hash.
type ProfileService struct {
	users    domain.UserRepository
	ideas    domain.IdeaRepository
	projects domain.ProjectRepository
}

// NewProfileService creates a ProfileService.
func NewProfileService(users domain.UserRepository, ideas domain.IdeaRepository, projects domain.ProjectRepository) *ProfileService {
	return &ProfileService{users: users, ideas: ideas, projects: projects}
}

// GetByID returns a user's profile.
func (s *ProfileService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.users.GetByID(ctx, userID)
}

// Update applies a profile patch to the caller's own user record.
func (s *ProfileService) Update(ctx context.Context, callerID string, patch domain.UserPatch) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	return s.users.Update(ctx, callerID, patch)
}

// ProfileStats summarizes a user's platform activity.
type ProfileStats struct {
	Ideas     int
	Projects  int
	Funding   float64
	Royalties float64
}

// Stats aggregates the caller's idea count, project count, and funding
// raised across their projects. Royalty accounting lives in the contract
// layer and is reported as zero here.
func (s *ProfileService) Stats(ctx context.Context, callerID string) (*ProfileStats, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	ideas, err := s.ideas.GetByCreator(ctx, callerID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.GetByExecutor(ctx, callerID)
	if err != nil {
		return nil, err
	}

	stats := &ProfileStats{Ideas: len(ideas), Projects: len(projects)}
	for _, p := range projects {
		stats.Funding += p.CurrentFunding
	}
	return stats, nil
}
