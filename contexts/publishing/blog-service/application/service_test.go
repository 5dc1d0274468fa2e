package application

import (
	"context"
	"errors"
	"testing"

	"showcase/contexts/publishing/blog-service/adapters/memory"
	"showcase/contexts/publishing/blog-service/domain/entities"
	domainerrors "showcase/contexts/publishing/blog-service/domain/errors"
	"showcase/contexts/publishing/blog-service/ports"
	"showcase/internal/platform/objectstore"
)

var editor = ports.Actor{ID: "mod-1", Role: ports.RoleModerator}

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return Service{
		Repo:   store,
		Covers: objectstore.NewMemoryStore("http://localhost/media"),
		Clock:  store,
		IDGen:  store,
	}, store
}

func TestCreateDraftsPostWithSlug(t *testing.T) {
	svc, _ := newService(t)

	post, err := svc.Create(context.Background(), editor, CreatePostInput{
		Title: "Winners of the 2026 Showcase!",
		Body:  "The jury has decided.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Status != entities.PostStatusDraft {
		t.Fatalf("status = %q, want draft", post.Status)
	}
	if post.Slug != "winners-of-the-2026-showcase" {
		t.Fatalf("slug = %q", post.Slug)
	}
	if post.AuthorID != editor.ID {
		t.Fatalf("author = %q", post.AuthorID)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newService(t)

	input := CreatePostInput{Title: "Launch Day", Body: "We are live."}
	if _, err := svc.Create(context.Background(), editor, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), editor, input); !errors.Is(err, domainerrors.ErrSlugTaken) {
		t.Fatalf("err = %v, want ErrSlugTaken", err)
	}
}

func TestAuthoringIsEditorGated(t *testing.T) {
	svc, _ := newService(t)
	developer := ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}

	if _, err := svc.Create(context.Background(), developer, CreatePostInput{Title: "t", Body: "b"}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("create err = %v, want ErrForbidden", err)
	}
	post, err := svc.Create(context.Background(), editor, CreatePostInput{Title: "Editors Only", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Publish(context.Background(), developer, post.PostID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("publish err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), developer, post.PostID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("delete err = %v, want ErrForbidden", err)
	}
}

func TestPublishUnpublishTogglesVisibility(t *testing.T) {
	svc, _ := newService(t)

	post, err := svc.Create(context.Background(), editor, CreatePostInput{Title: "Jury Notes", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	published, err := svc.Publish(context.Background(), editor, post.PostID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != entities.PostStatusPublished || published.PublishedAt == nil {
		t.Fatalf("published = %+v", published)
	}

	page, err := svc.List(context.Background(), ListPostsInput{PublishedOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("public listing = %d items, want 1", len(page.Items))
	}

	draft, err := svc.Unpublish(context.Background(), editor, post.PostID)
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if draft.Status != entities.PostStatusDraft || draft.PublishedAt != nil {
		t.Fatalf("draft = %+v", draft)
	}
	page, err = svc.List(context.Background(), ListPostsInput{PublishedOnly: true})
	if err != nil {
		t.Fatalf("list after unpublish: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("public listing = %d items, want 0", len(page.Items))
	}
}

func TestGetBySlug(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), editor, CreatePostInput{Title: "Behind the Scenes", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.GetBySlug(context.Background(), "behind-the-scenes")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.PostID != created.PostID {
		t.Fatalf("post id = %q, want %q", got.PostID, created.PostID)
	}
	if _, err := svc.GetBySlug(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}

func TestCoverUploadSetsURL(t *testing.T) {
	svc, _ := newService(t)

	post, err := svc.Create(context.Background(), editor, CreatePostInput{
		Title:            "With Cover",
		Body:             "b",
		Cover:            []byte{0x89, 0x50, 0x4e, 0x47},
		CoverContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.CoverURL == "" {
		t.Fatal("cover URL must be set after upload")
	}
}
