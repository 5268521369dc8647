package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

// ProjectRepository implements domain.ProjectRepository over the store.
// Milestones travel embedded in the project record; they are never stored
// on their own.
type ProjectRepository struct {
	projects store.Collection[domain.Project]
}

// NewProjectRepository creates a store-backed ProjectRepository.
func NewProjectRepository(s *store.Store) *ProjectRepository {
	return &ProjectRepository{
		projects: store.NewCollection[domain.Project](s, store.CollectionProjects),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.ID == "" {
		project.ID = newID("project")
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	project.UpdatedAt = project.CreatedAt

	if err := r.projects.Put(ctx, project.ID, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.projects.Get(ctx, id)
}

// GetByExecutor returns the executor's projects, newest first.
func (r *ProjectRepository) GetByExecutor(ctx context.Context, executorID string) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.projects.Scan(ctx, func(_ string, p domain.Project) error {
		if p.ExecutorID == executorID {
			projects = append(projects, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	sortNewestFirst(projects, func(p domain.Project) time.Time { return p.CreatedAt })
	return projects, nil
}

// GetAll returns every project, newest first.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.projects.Scan(ctx, func(_ string, p domain.Project) error {
		projects = append(projects, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	sortNewestFirst(projects, func(p domain.Project) time.Time { return p.CreatedAt })
	return projects, nil
}

// Update merges the patch into the stored project and refreshes UpdatedAt.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	project, err := r.projects.Get(ctx, id)
	if err != nil {
		return err
	}

	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Milestones != nil {
		project.Milestones = *patch.Milestones
	}
	if patch.TotalFunding != nil {
		project.TotalFunding = *patch.TotalFunding
	}
	if patch.CurrentFunding != nil {
		project.CurrentFunding = *patch.CurrentFunding
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
	if patch.StartDate != nil {
		project.StartDate = *patch.StartDate
	}
	if patch.EstimatedCompletion != nil {
		project.EstimatedCompletion = *patch.EstimatedCompletion
	}
	if patch.ActualCompletion != nil {
		project.ActualCompletion = patch.ActualCompletion
	}
	project.UpdatedAt = time.Now().UTC()

	return r.projects.Put(ctx, id, project)
}
