package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"showcase/contexts/showcase/competition-service/application"
	"showcase/contexts/showcase/competition-service/domain/entities"
	"showcase/contexts/showcase/competition-service/ports"
	httptransport "showcase/contexts/showcase/competition-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, req httptransport.CreateCompetitionRequest) (httptransport.CompetitionResponse, error) {
	competition, err := h.Service.Create(ctx, application.CreateCompetitionInput{
		Name:         req.Name,
		Description:  req.Description,
		Organizer:    req.Organizer,
		ContactEmail: req.ContactEmail,
		WebsiteURL:   req.WebsiteURL,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
	})
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	return competitionResponse(competition), nil
}

func (h Handler) GetHandler(ctx context.Context, competitionID string) (httptransport.CompetitionResponse, error) {
	competition, err := h.Service.Get(ctx, competitionID)
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	return competitionResponse(competition), nil
}

func (h Handler) ListHandler(ctx context.Context, statusRaw string, search string, page int, pageSize int) (httptransport.CompetitionListResponse, error) {
	result, err := h.Service.List(ctx, application.ListCompetitionsInput{
		Status:   statusRaw,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return httptransport.CompetitionListResponse{}, err
	}
	resp := httptransport.CompetitionListResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Items = make([]httptransport.CompetitionData, 0, len(result.Items))
	for _, item := range result.Items {
		resp.Data.Items = append(resp.Data.Items, competitionData(item))
	}
	resp.Data.CurrentPage = result.CurrentPage
	resp.Data.TotalPages = result.TotalPages
	resp.Data.TotalItems = result.TotalItems
	return resp, nil
}

func (h Handler) AcceptHandler(ctx context.Context, competitionID string, actor ports.Actor) (httptransport.CompetitionResponse, error) {
	competition, err := h.Service.Approve(ctx, competitionID, actor)
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	return competitionResponse(competition), nil
}

func (h Handler) RejectHandler(ctx context.Context, competitionID string, actor ports.Actor, req httptransport.RejectCompetitionRequest) (httptransport.CompetitionResponse, error) {
	competition, err := h.Service.Reject(ctx, competitionID, actor, req.Reason)
	if err != nil {
		return httptransport.CompetitionResponse{}, err
	}
	return competitionResponse(competition), nil
}

func (h Handler) DeleteHandler(ctx context.Context, competitionID string, actor ports.Actor) (httptransport.DeleteResponse, error) {
	if err := h.Service.Delete(ctx, competitionID, actor); err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Status: "success", Timestamp: timestamp()}, nil
}

func competitionData(item entities.Competition) httptransport.CompetitionData {
	data := httptransport.CompetitionData{
		CompetitionID:   item.CompetitionID,
		Name:            item.Name,
		Description:     item.Description,
		Organizer:       item.Organizer,
		WebsiteURL:      item.WebsiteURL,
		StartsAt:        item.StartsAt.UTC().Format(time.RFC3339),
		Status:          string(item.Status),
		ApprovedByID:    item.ApprovedByID,
		RejectedByID:    item.RejectedByID,
		RejectionReason: item.RejectionReason,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.EndsAt != nil {
		data.EndsAt = item.EndsAt.UTC().Format(time.RFC3339)
	}
	return data
}

func competitionResponse(item entities.Competition) httptransport.CompetitionResponse {
	return httptransport.CompetitionResponse{
		Status:    "success",
		Data:      competitionData(item),
		Timestamp: timestamp(),
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
