package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/repository/kv"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

func newTestDataService(t *testing.T) *service.DataService {
	t.Helper()
	return service.NewDataService(kv.NewDataRecordRepository(newTestStore(t)))
}

func TestDataService_CreateAndGet(t *testing.T) {
	data := newTestDataService(t)
	ctx := context.Background()

	record, err := data.Create(ctx, "user_1", "prefs", map[string]any{"theme": "dark"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := data.Get(ctx, "user_1", record.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Key != "prefs" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestDataService_Create_Validation(t *testing.T) {
	data := newTestDataService(t)
	ctx := context.Background()

	if _, err := data.Create(ctx, "", "k", "v"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := data.Create(ctx, "user_1", "", "v"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing key, got %v", err)
	}
	if _, err := data.Create(ctx, "user_1", "k", nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing value, got %v", err)
	}
}

func TestDataService_Get_OwnerOnly(t *testing.T) {
	data := newTestDataService(t)
	ctx := context.Background()

	record, err := data.Create(ctx, "user_1", "secret", "v")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := data.Get(ctx, "user_2", record.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestDataService_UpdateAndDelete_OwnerOnly(t *testing.T) {
	data := newTestDataService(t)
	ctx := context.Background()

	record, err := data.Create(ctx, "user_1", "k", "v")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var value any = "v2"
	if err := data.Update(ctx, "user_2", record.ID, domain.DataRecordPatch{Value: &value}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied on update, got %v", err)
	}
	if err := data.Delete(ctx, "user_2", record.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied on delete, got %v", err)
	}

	if err := data.Update(ctx, "user_1", record.ID, domain.DataRecordPatch{Value: &value}); err != nil {
		t.Fatalf("Update by owner: %v", err)
	}
	got, err := data.Get(ctx, "user_1", record.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Value != "v2" {
		t.Fatalf("expected updated value, got %v", got.Value)
	}

	if err := data.Delete(ctx, "user_1", record.ID); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	if _, err := data.Get(ctx, "user_1", record.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
}

func TestProfileService_Stats(t *testing.T) {
	st := newTestStore(t)
	userRepo := kv.NewUserRepository(st)
	ideaRepo := kv.NewIdeaRepository(st)
	projectRepo := kv.NewProjectRepository(st)
	profiles := service.NewProfileService(userRepo, ideaRepo, projectRepo)
	ctx := context.Background()

	user := &domain.User{Email: "a@x.com", PasswordHash: "hash"}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, title := range []string{"one", "two"} {
		idea := &domain.Idea{CreatorID: user.ID, Title: title, Description: "d", Category: "c"}
		if err := ideaRepo.Create(ctx, idea); err != nil {
			t.Fatalf("create idea: %v", err)
		}
	}
	project := &domain.Project{IdeaID: "i", ExecutorID: user.ID, Title: "P", Description: "d", CurrentFunding: 1500}
	if err := projectRepo.Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	stats, err := profiles.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Ideas != 2 || stats.Projects != 1 || stats.Funding != 1500 || stats.Royalties != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestProfileService_Update_RequiresCaller(t *testing.T) {
	st := newTestStore(t)
	profiles := service.NewProfileService(kv.NewUserRepository(st), kv.NewIdeaRepository(st), kv.NewProjectRepository(st))

	name := "X"
	if err := profiles.Update(context.Background(), "", domain.UserPatch{Name: &name}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
