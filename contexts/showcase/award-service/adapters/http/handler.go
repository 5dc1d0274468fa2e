package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"showcase/contexts/showcase/award-service/application"
	"showcase/contexts/showcase/award-service/domain/entities"
	"showcase/contexts/showcase/award-service/ports"
	httptransport "showcase/contexts/showcase/award-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, req httptransport.CreateAwardRequest) (httptransport.AwardResponse, error) {
	award, err := h.Service.Create(ctx, application.CreateAwardInput{
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.Image,
		ProjectID:     req.ProjectID,
		CompetitionID: req.CompetitionID,
	})
	if err != nil {
		return httptransport.AwardResponse{}, err
	}
	return awardResponse(award), nil
}

func (h Handler) GetHandler(ctx context.Context, awardID string) (httptransport.AwardResponse, error) {
	award, err := h.Service.Get(ctx, awardID)
	if err != nil {
		return httptransport.AwardResponse{}, err
	}
	return awardResponse(award), nil
}

func (h Handler) ListHandler(ctx context.Context, statusRaw string, search string, page int, pageSize int) (httptransport.AwardListResponse, error) {
	result, err := h.Service.List(ctx, application.ListAwardsInput{
		Status:   statusRaw,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return httptransport.AwardListResponse{}, err
	}
	resp := httptransport.AwardListResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Items = make([]httptransport.AwardData, 0, len(result.Items))
	for _, item := range result.Items {
		resp.Data.Items = append(resp.Data.Items, awardData(item))
	}
	resp.Data.CurrentPage = result.CurrentPage
	resp.Data.TotalPages = result.TotalPages
	resp.Data.TotalItems = result.TotalItems
	return resp, nil
}

func (h Handler) AcceptHandler(ctx context.Context, awardID string, actor ports.Actor) (httptransport.AwardResponse, error) {
	award, err := h.Service.Approve(ctx, awardID, actor)
	if err != nil {
		return httptransport.AwardResponse{}, err
	}
	return awardResponse(award), nil
}

func (h Handler) RejectHandler(ctx context.Context, awardID string, actor ports.Actor, req httptransport.RejectAwardRequest) (httptransport.AwardResponse, error) {
	award, err := h.Service.Reject(ctx, awardID, actor, req.Reason)
	if err != nil {
		return httptransport.AwardResponse{}, err
	}
	return awardResponse(award), nil
}

func (h Handler) DeleteHandler(ctx context.Context, awardID string, actor ports.Actor) (httptransport.DeleteResponse, error) {
	if err := h.Service.Delete(ctx, awardID, actor); err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Status: "success", Timestamp: timestamp()}, nil
}

func awardData(item entities.Award) httptransport.AwardData {
	return httptransport.AwardData{
		AwardID:         item.AwardID,
		Name:            item.Name,
		Description:     item.Description,
		Image:           item.ImageURL,
		ProjectID:       item.ProjectID,
		CompetitionID:   item.CompetitionID,
		Status:          string(item.Status),
		ApprovedByID:    item.ApprovedByID,
		RejectedByID:    item.RejectedByID,
		RejectionReason: item.RejectionReason,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func awardResponse(item entities.Award) httptransport.AwardResponse {
	return httptransport.AwardResponse{
		Status:    "success",
		Data:      awardData(item),
		Timestamp: timestamp(),
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
