package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/repository/kv"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

func newTestProjectService(t *testing.T) *service.ProjectService {
	t.Helper()
	return service.NewProjectService(kv.NewProjectRepository(newTestStore(t)))
}

func TestProjectService_Create(t *testing.T) {
	projects := newTestProjectService(t)

	project, err := projects.Create(context.Background(), "user_1", service.CreateProjectInput{
		IdeaID:       "idea_1",
		Title:        "Build",
		Description:  "d",
		TotalFunding: 5000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.ID == "" {
		t.Fatal("expected id to be assigned")
	}
	if project.Status != domain.ProjectStatusFunding {
		t.Fatalf("expected funding status, got %q", project.Status)
	}
	if project.CurrentFunding != 0 {
		t.Fatalf("expected zero current funding, got %v", project.CurrentFunding)
	}
	if project.Milestones == nil {
		t.Fatal("expected milestones to default to an empty slice")
	}
	if project.StartDate.IsZero() {
		t.Fatal("expected start date to default to now")
	}
}

func TestProjectService_Create_RequiresFields(t *testing.T) {
	projects := newTestProjectService(t)
	ctx := context.Background()

	if _, err := projects.Create(ctx, "", service.CreateProjectInput{IdeaID: "i", Title: "T", Description: "d"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := projects.Create(ctx, "user_1", service.CreateProjectInput{Title: "T"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectService_Update_ExecutorOnly(t *testing.T) {
	projects := newTestProjectService(t)
	ctx := context.Background()

	project, err := projects.Create(ctx, "user_1", service.CreateProjectInput{IdeaID: "i", Title: "T", Description: "d"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := domain.ProjectStatusCancelled
	if err := projects.Update(ctx, "user_2", project.ID, domain.ProjectPatch{Status: &status}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := projects.Update(ctx, "user_1", project.ID, domain.ProjectPatch{Status: &status}); err != nil {
		t.Fatalf("Update by executor: %v", err)
	}

	got, err := projects.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.ProjectStatusCancelled {
		t.Fatalf("expected cancelled, got %q", got.Status)
	}
}

func TestFundingService_Create(t *testing.T) {
	st := newTestStore(t)
	funding := service.NewFundingService(kv.NewFundingRepository(st), kv.NewProjectRepository(st))
	ctx := context.Background()

	f, err := funding.Create(ctx, "user_1", service.CreateFundingInput{ProjectID: "project_1", Amount: 100, EquityPercentage: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.Status != domain.FundingStatusPending {
		t.Fatalf("expected pending, got %q", f.Status)
	}
	if f.FunderID != "user_1" {
		t.Fatalf("expected funder user_1, got %q", f.FunderID)
	}

	if _, err := funding.Create(ctx, "user_1", service.CreateFundingInput{ProjectID: "project_1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFundingService_Update_FunderOrExecutor(t *testing.T) {
	st := newTestStore(t)
	projectRepo := kv.NewProjectRepository(st)
	funding := service.NewFundingService(kv.NewFundingRepository(st), projectRepo)
	ctx := context.Background()

	project := &domain.Project{IdeaID: "i", ExecutorID: "executor", Title: "T", Description: "d"}
	if err := projectRepo.Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	f, err := funding.Create(ctx, "funder", service.CreateFundingInput{ProjectID: project.ID, Amount: 100, EquityPercentage: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved := domain.FundingStatusApproved
	rejected := domain.FundingStatusRejected

	if err := funding.Update(ctx, "stranger", f.ID, domain.FundingPatch{Status: &approved}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for stranger, got %v", err)
	}
	if err := funding.Update(ctx, "executor", f.ID, domain.FundingPatch{Status: &approved}); err != nil {
		t.Fatalf("Update by executor: %v", err)
	}
	if err := funding.Update(ctx, "funder", f.ID, domain.FundingPatch{Status: &rejected}); err != nil {
		t.Fatalf("Update by funder: %v", err)
	}
}

func TestFundingService_Update_DanglingProject(t *testing.T) {
	st := newTestStore(t)
	funding := service.NewFundingService(kv.NewFundingRepository(st), kv.NewProjectRepository(st))
	ctx := context.Background()

	// The referenced project does not exist; only the funder may update.
	f, err := funding.Create(ctx, "funder", service.CreateFundingInput{ProjectID: "project_gone", Amount: 100, EquityPercentage: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved := domain.FundingStatusApproved
	if err := funding.Update(ctx, "somebody", f.ID, domain.FundingPatch{Status: &approved}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := funding.Update(ctx, "funder", f.ID, domain.FundingPatch{Status: &approved}); err != nil {
		t.Fatalf("Update by funder: %v", err)
	}
}
