package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"showcase/contexts/identity/user-service/application"
	"showcase/contexts/identity/user-service/domain/entities"
	"showcase/contexts/identity/user-service/ports"
	httptransport "showcase/contexts/identity/user-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, req httptransport.CreateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.Create(ctx, application.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func (h Handler) GetHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Service.Get(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func (h Handler) ListHandler(ctx context.Context, actor ports.Actor, roleRaw string, search string, page int, pageSize int) (httptransport.UserListResponse, error) {
	result, err := h.Service.List(ctx, actor, application.ListUsersInput{
		Role:     roleRaw,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return httptransport.UserListResponse{}, err
	}
	resp := httptransport.UserListResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Items = make([]httptransport.UserData, 0, len(result.Items))
	for _, item := range result.Items {
		resp.Data.Items = append(resp.Data.Items, userData(item))
	}
	resp.Data.CurrentPage = result.CurrentPage
	resp.Data.TotalPages = result.TotalPages
	resp.Data.TotalItems = result.TotalItems
	return resp, nil
}

func (h Handler) ChangeRoleHandler(ctx context.Context, actor ports.Actor, userID string, req httptransport.ChangeRoleRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.ChangeRole(ctx, actor, userID, req.Role)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func (h Handler) DeleteHandler(ctx context.Context, actor ports.Actor, userID string) (httptransport.DeleteResponse, error) {
	if err := h.Service.Delete(ctx, actor, userID); err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Status: "success", Timestamp: timestamp()}, nil
}

func userData(item entities.User) httptransport.UserData {
	return httptransport.UserData{
		UserID:      item.UserID,
		Username:    item.Username,
		Email:       item.Email,
		DisplayName: item.DisplayName,
		Role:        string(item.Role),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func userResponse(item entities.User) httptransport.UserResponse {
	return httptransport.UserResponse{
		Status:    "success",
		Data:      userData(item),
		Timestamp: timestamp(),
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
