package httptransport

type CreatePostRequest struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Body    string `json:"body"`
}

type UpdatePostRequest struct {
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Body    string `json:"body,omitempty"`
}

type PostData struct {
	PostID      string `json:"post_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt,omitempty"`
	Body        string `json:"body,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	AuthorID    string `json:"author_id"`
	Status      string `json:"status"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type PostResponse struct {
	Status    string   `json:"status"`
	Data      PostData `json:"data"`
	Timestamp string   `json:"timestamp"`
}

type PostListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items       []PostData `json:"items"`
		CurrentPage int        `json:"current_page"`
		TotalPages  int        `json:"total_pages"`
		TotalItems  int64      `json:"total_items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type DeleteResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}
