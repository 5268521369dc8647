package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// ProjectService manages project lifecycle and enforces executor
// ownership. It does not verify that the referenced idea exists; entity
// references are opaque ids resolved on read.
type ProjectService struct {
	projects domain.ProjectRepository
}

// NewProjectService creates a ProjectService.
func NewProjectService(projects domain.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// CreateProjectInput carries a new project's fields.
type CreateProjectInput struct {
	IdeaID              string
	Title               string
	Description         string
	Milestones          []domain.Milestone
	TotalFunding        float64
	StartDate           time.Time
	EstimatedCompletion time.Time
}

// Create validates and stores a new project in funding state for
// executorID.
func (s *ProjectService) Create(ctx context.Context, executorID string, in CreateProjectInput) (*domain.Project, error) {
	if executorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.IdeaID == "" || in.Title == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: idea id, title, and description are required", domain.ErrInvalidInput)
	}

	project := &domain.Project{
		IdeaID:              in.IdeaID,
		ExecutorID:          executorID,
		Title:               in.Title,
		Description:         in.Description,
		Milestones:          in.Milestones,
		TotalFunding:        in.TotalFunding,
		CurrentFunding:      0,
		Status:              domain.ProjectStatusFunding,
		StartDate:           in.StartDate,
		EstimatedCompletion: in.EstimatedCompletion,
	}
	if project.Milestones == nil {
		project.Milestones = []domain.Milestone{}
	}
	if project.StartDate.IsZero() {
		project.StartDate = time.Now().UTC()
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetByID returns a project. Projects are publicly readable.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// GetByExecutor lists an executor's projects, newest first. An empty
// executorID means the caller's own.
func (s *ProjectService) GetByExecutor(ctx context.Context, callerID, executorID string) ([]domain.Project, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if executorID == "" {
		executorID = callerID
	}
	return s.projects.GetByExecutor(ctx, executorID)
}

// GetAll lists every project, newest first.
func (s *ProjectService) GetAll(ctx context.Context) ([]domain.Project, error) {
	return s.projects.GetAll(ctx)
}

// Update applies a patch to a project the caller executes.
func (s *ProjectService) Update(ctx context.Context, callerID, projectID string, patch domain.ProjectPatch) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.ExecutorID != callerID {
		return domain.ErrAccessDenied
	}
	return s.projects.Update(ctx, projectID, patch)
}
