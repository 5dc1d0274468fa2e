package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"showcase/contexts/publishing/blog-service/application"
	"showcase/contexts/publishing/blog-service/domain/entities"
	"showcase/contexts/publishing/blog-service/ports"
	httptransport "showcase/contexts/publishing/blog-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, actor ports.Actor, req httptransport.CreatePostRequest) (httptransport.PostResponse, error) {
	post, err := h.Service.Create(ctx, actor, application.CreatePostInput{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Body:    req.Body,
	})
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return postResponse(post), nil
}

func (h Handler) UpdateHandler(ctx context.Context, actor ports.Actor, postID string, req httptransport.UpdatePostRequest) (httptransport.PostResponse, error) {
	post, err := h.Service.Update(ctx, actor, postID, application.UpdatePostInput{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Body:    req.Body,
	})
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return postResponse(post), nil
}

func (h Handler) PublishHandler(ctx context.Context, actor ports.Actor, postID string) (httptransport.PostResponse, error) {
	post, err := h.Service.Publish(ctx, actor, postID)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return postResponse(post), nil
}

func (h Handler) UnpublishHandler(ctx context.Context, actor ports.Actor, postID string) (httptransport.PostResponse, error) {
	post, err := h.Service.Unpublish(ctx, actor, postID)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return postResponse(post), nil
}

func (h Handler) DeleteHandler(ctx context.Context, actor ports.Actor, postID string) (httptransport.DeleteResponse, error) {
	if err := h.Service.Delete(ctx, actor, postID); err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Status: "success", Timestamp: timestamp()}, nil
}

func (h Handler) GetHandler(ctx context.Context, postID string) (httptransport.PostResponse, error) {
	post, err := h.Service.Get(ctx, postID)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return postResponse(post), nil
}

func (h Handler) GetBySlugHandler(ctx context.Context, slug string) (httptransport.PostResponse, error) {
	post, err := h.Service.GetBySlug(ctx, slug)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return postResponse(post), nil
}

func (h Handler) ListHandler(ctx context.Context, search string, page int, pageSize int, publishedOnly bool) (httptransport.PostListResponse, error) {
	result, err := h.Service.List(ctx, application.ListPostsInput{
		Search:        search,
		Page:          page,
		PageSize:      pageSize,
		PublishedOnly: publishedOnly,
	})
	if err != nil {
		return httptransport.PostListResponse{}, err
	}
	resp := httptransport.PostListResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Items = make([]httptransport.PostData, 0, len(result.Items))
	for _, item := range result.Items {
		resp.Data.Items = append(resp.Data.Items, postData(item))
	}
	resp.Data.CurrentPage = result.CurrentPage
	resp.Data.TotalPages = result.TotalPages
	resp.Data.TotalItems = result.TotalItems
	return resp, nil
}

func postData(item entities.Post) httptransport.PostData {
	data := httptransport.PostData{
		PostID:    item.PostID,
		Title:     item.Title,
		Slug:      item.Slug,
		Excerpt:   item.Excerpt,
		Body:      item.Body,
		CoverURL:  item.CoverURL,
		AuthorID:  item.AuthorID,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.PublishedAt != nil {
		data.PublishedAt = item.PublishedAt.UTC().Format(time.RFC3339)
	}
	return data
}

func postResponse(item entities.Post) httptransport.PostResponse {
	return httptransport.PostResponse{
		Status:    "success",
		Data:      postData(item),
		Timestamp: timestamp(),
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
