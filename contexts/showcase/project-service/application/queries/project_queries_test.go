package queries

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"showcase/contexts/showcase/project-service/adapters/memory"
	"showcase/contexts/showcase/project-service/domain/entities"
	domainerrors "showcase/contexts/showcase/project-service/domain/errors"
)

func seedListing(t *testing.T, store *memory.Store) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("RoboProject %02d", i)
		status := entities.ApprovalStatusApproved
		if i%5 == 0 {
			status = entities.ApprovalStatusPending
		}
		project := entities.Project{
			ProjectID: fmt.Sprintf("p-%02d", i),
			Name:      name,
			Summary:   "summary",
			TeamName:  "team",
			TeamEmail: "team@example.com",
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base,
		}
		if err := store.CreateProject(context.Background(), project, entities.Showcase{ProjectID: project.ProjectID}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	uc := QueryUseCase{Repository: memory.NewStore()}
	_, err := uc.ListProjects(context.Background(), ListProjectsQuery{Status: "archived"})
	if !errors.Is(err, domainerrors.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestListPaginatesNewestFirst(t *testing.T) {
	store := memory.NewStore()
	seedListing(t, store)
	uc := QueryUseCase{Repository: store}

	page, err := uc.ListProjects(context.Background(), ListProjectsQuery{
		Status:   "approved",
		Page:     2,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.CurrentPage != 2 {
		t.Fatalf("expected current page 2, got %d", page.CurrentPage)
	}
	if page.TotalItems != 20 || page.TotalPages != 2 {
		t.Fatalf("expected 20 approved over 2 pages, got %d over %d", page.TotalItems, page.TotalPages)
	}
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(page.Items))
	}
	for _, item := range page.Items {
		if item.Status != entities.ApprovalStatusApproved {
			t.Fatalf("non-approved row leaked into approved listing: %q", item.ProjectID)
		}
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt) {
			t.Fatal("listing must be ordered newest first")
		}
	}
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	store := memory.NewStore()
	seedListing(t, store)
	uc := QueryUseCase{Repository: store}

	page, err := uc.ListProjects(context.Background(), ListProjectsQuery{
		Search:   "roboproject 1",
		Page:     1,
		PageSize: 50,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// Matches 10..19 regardless of letter case in the needle.
	if page.TotalItems != 10 {
		t.Fatalf("expected 10 matches, got %d", page.TotalItems)
	}
}

func TestListDefaultsPageBounds(t *testing.T) {
	store := memory.NewStore()
	seedListing(t, store)
	uc := QueryUseCase{Repository: store}

	page, err := uc.ListProjects(context.Background(), ListProjectsQuery{Page: -3, PageSize: 0})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.CurrentPage != 1 {
		t.Fatalf("negative page must clamp to 1, got %d", page.CurrentPage)
	}
	if len(page.Items) != 10 {
		t.Fatalf("zero page size must fall back to default, got %d rows", len(page.Items))
	}
}
