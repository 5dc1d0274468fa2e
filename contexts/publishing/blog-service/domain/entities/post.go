package entities

import (
	"regexp"
	"strings"
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type Post struct {
	PostID      string
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverURL    string
	AuthorID    string
	Status      PostStatus
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Post) ValidateCreate() bool {
	return p.Title != "" && p.Body != "" && p.AuthorID != ""
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses every non-alphanumeric
// run into a single hyphen.
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
