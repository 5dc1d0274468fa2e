package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/project-service/application/commands"
	"showcase/contexts/showcase/project-service/application/queries"
	"showcase/contexts/showcase/project-service/domain/entities"
	"showcase/contexts/showcase/project-service/ports"
	httptransport "showcase/contexts/showcase/project-service/transport/http"
)

// VoteCounter lets the handler decorate listings with vote totals
// owned by the voting context.
type VoteCounter interface {
	CountVotes(ctx context.Context, projectIDs []string) (map[string]int, error)
}

type Handler struct {
	Intake     commands.IntakeUseCase
	Moderation commands.ModerationUseCase
	Queries    queries.QueryUseCase
	Votes      VoteCounter
	Logger     *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, req httptransport.CreateProjectRequest) (httptransport.ProjectResponse, error) {
	project, err := h.Intake.Create(ctx, commands.CreateProjectCommand{
		Name:        req.Name,
		Summary:     req.Summary,
		Description: req.Description,
		TeamName:    req.TeamName,
		TeamEmail:   req.TeamEmail,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return projectResponse(project, entities.Showcase{}, 0), nil
}

func (h Handler) GetHandler(ctx context.Context, projectID string) (httptransport.ProjectResponse, error) {
	record, err := h.Queries.GetProject(ctx, projectID)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	votes := h.countVotes(ctx, []string{record.Project.ProjectID})
	return projectResponse(record.Project, record.Showcase, votes[record.Project.ProjectID]), nil
}

func (h Handler) ListHandler(ctx context.Context, statusRaw string, search string, page int, pageSize int) (httptransport.ProjectListResponse, error) {
	result, err := h.Queries.ListProjects(ctx, queries.ListProjectsQuery{
		Status:   statusRaw,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	return h.listResponse(ctx, result), nil
}

func (h Handler) ListPublicHandler(ctx context.Context, search string, page int, pageSize int) (httptransport.ProjectListResponse, error) {
	result, err := h.Queries.ListPublic(ctx, search, page, pageSize)
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	return h.listResponse(ctx, result), nil
}

func (h Handler) AcceptHandler(ctx context.Context, projectID string, actor ports.Actor) (httptransport.ProjectResponse, error) {
	project, err := h.Moderation.Approve(ctx, projectID, actor)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return projectResponse(project, entities.Showcase{}, 0), nil
}

// RejectHandler returns the project record even on the already-rejected
// conflict so the transport can include the prior reason in the 409.
func (h Handler) RejectHandler(ctx context.Context, projectID string, actor ports.Actor, req httptransport.RejectProjectRequest) (httptransport.ProjectResponse, entities.Project, error) {
	project, err := h.Moderation.Reject(ctx, projectID, actor, strings.TrimSpace(req.Reason))
	if err != nil {
		return httptransport.ProjectResponse{}, project, err
	}
	return projectResponse(project, entities.Showcase{}, 0), project, nil
}

func (h Handler) FeatureHandler(ctx context.Context, actor ports.Actor, req httptransport.FeatureProjectRequest) (httptransport.FeatureResponse, error) {
	showcase, err := h.Moderation.Feature(ctx, strings.TrimSpace(req.ProjectID), req.Featured, actor)
	if err != nil {
		return httptransport.FeatureResponse{}, err
	}
	resp := httptransport.FeatureResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.ProjectID = showcase.ProjectID
	resp.Data.Featured = showcase.Featured
	resp.Data.FeaturedBy = showcase.FeaturedByID
	return resp, nil
}

func (h Handler) DeleteHandler(ctx context.Context, projectID string, actor ports.Actor) (httptransport.DeleteResponse, error) {
	if err := h.Moderation.Delete(ctx, projectID, actor); err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Status: "success", Timestamp: timestamp()}, nil
}

func (h Handler) listResponse(ctx context.Context, page ports.ProjectPage) httptransport.ProjectListResponse {
	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ProjectID)
	}
	votes := h.countVotes(ctx, ids)
	showcases, err := h.Queries.Showcases(ctx, ids)
	if err != nil {
		showcases = map[string]entities.Showcase{}
	}

	resp := httptransport.ProjectListResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Items = make([]httptransport.ProjectData, 0, len(page.Items))
	for _, item := range page.Items {
		resp.Data.Items = append(resp.Data.Items, projectData(item, showcases[item.ProjectID], votes[item.ProjectID]))
	}
	resp.Data.CurrentPage = page.CurrentPage
	resp.Data.TotalPages = page.TotalPages
	resp.Data.TotalItems = page.TotalItems
	return resp
}

func (h Handler) countVotes(ctx context.Context, projectIDs []string) map[string]int {
	if h.Votes == nil || len(projectIDs) == 0 {
		return map[string]int{}
	}
	counts, err := h.Votes.CountVotes(ctx, projectIDs)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("vote count lookup failed, serving listing without counts",
				"event", "project_vote_count_failed",
				"module", "showcase/project-service",
				"layer", "adapter",
				"error", err.Error(),
			)
		}
		return map[string]int{}
	}
	return counts
}

func projectData(project entities.Project, showcase entities.Showcase, votes int) httptransport.ProjectData {
	return httptransport.ProjectData{
		ProjectID:       project.ProjectID,
		Name:            project.Name,
		Summary:         project.Summary,
		Description:     project.Description,
		TeamName:        project.TeamName,
		RepoURL:         project.RepoURL,
		DemoURL:         project.DemoURL,
		Status:          string(project.Status),
		ApprovedByID:    project.ApprovedByID,
		RejectedByID:    project.RejectedByID,
		RejectionReason: project.RejectionReason,
		Featured:        showcase.Featured,
		FeaturedByID:    showcase.FeaturedByID,
		CoverURL:        showcase.CoverURL,
		VoteCount:       votes,
		CreatedAt:       project.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func projectResponse(project entities.Project, showcase entities.Showcase, votes int) httptransport.ProjectResponse {
	return httptransport.ProjectResponse{
		Status:    "success",
		Data:      projectData(project, showcase, votes),
		Timestamp: timestamp(),
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
