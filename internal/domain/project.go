package domain

import (
	"context"
	"time"
)

// ProjectStatus tracks a project's execution lifecycle.
type ProjectStatus string

const (
	ProjectStatusFunding    ProjectStatus = "funding"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// MilestoneStatus tracks a milestone within a project.
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in-progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
	MilestoneStatusPaid       MilestoneStatus = "paid"
)

// Milestone is embedded in a Project; it is never stored on its own.
type Milestone struct {
	ID            string
	Title         string
	Description   string
	FundingAmount float64
	Status        MilestoneStatus
	DueDate       time.Time
	CompletedDate *time.Time
}

// Project is an execution of an idea by an executor. References to the
// idea and executor are by opaque id only; nothing cascades through them.
type Project struct {
	ID                  string
	IdeaID              string
	ExecutorID          string
	Title               string
	Description         string
	Milestones          []Milestone
	TotalFunding        float64
	CurrentFunding      float64
	Status              ProjectStatus
	StartDate           time.Time
	EstimatedCompletion time.Time
	ActualCompletion    *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ProjectPatch is a partial update to a project. Nil fields are left
// unchanged; Milestones replaces the whole sequence when set.
type ProjectPatch struct {
	Title               *string
	Description         *string
	Milestones          *[]Milestone
	TotalFunding        *float64
	CurrentFunding      *float64
	Status              *ProjectStatus
	StartDate           *time.Time
	EstimatedCompletion *time.Time
	ActualCompletion    *time.Time
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	GetByExecutor(ctx context.Context, executorID string) ([]Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch) error
}
