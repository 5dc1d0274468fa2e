package queries

import (
	"context"
	"log/slog"
	"strings"

	application "showcase/contexts/showcase/project-service/application"
	"showcase/contexts/showcase/project-service/domain/entities"
	domainerrors "showcase/contexts/showcase/project-service/domain/errors"
	"showcase/contexts/showcase/project-service/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type ListProjectsQuery struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetProject(ctx context.Context, projectID string) (ports.ProjectWithShowcase, error) {
	return uc.Repository.GetProject(ctx, strings.TrimSpace(projectID))
}

// ListProjects returns a status-scoped, search-filtered page, newest
// first. Unknown status values are rejected rather than ignored.
func (uc QueryUseCase) ListProjects(ctx context.Context, query ListProjectsQuery) (ports.ProjectPage, error) {
	filter := ports.ProjectFilter{
		Search:   strings.TrimSpace(query.Search),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status, ok := entities.ParseApprovalStatus(raw)
		if !ok {
			return ports.ProjectPage{}, domainerrors.ErrInvalidStatus
		}
		filter.Status = status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	page, err := uc.Repository.ListProjects(ctx, filter)
	if err != nil {
		return ports.ProjectPage{}, err
	}
	application.ResolveLogger(uc.Logger).Debug("project listing served",
		"event", "project_listing_served",
		"module", "showcase/project-service",
		"layer", "application",
		"status", string(filter.Status),
		"page", filter.Page,
		"total", page.TotalItems,
	)
	return page, nil
}

// Showcases resolves showcase metadata for a page of project IDs.
func (uc QueryUseCase) Showcases(ctx context.Context, projectIDs []string) (map[string]entities.Showcase, error) {
	items, err := uc.Repository.ListShowcases(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entities.Showcase, len(items))
	for _, item := range items {
		byID[item.ProjectID] = item
	}
	return byID, nil
}

// ListPublic is the visitor-facing listing: approved projects only.
func (uc QueryUseCase) ListPublic(ctx context.Context, search string, page int, pageSize int) (ports.ProjectPage, error) {
	return uc.ListProjects(ctx, ListProjectsQuery{
		Status:   string(entities.ApprovalStatusApproved),
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
}
