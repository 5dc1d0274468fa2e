package http

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

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	TeamName    string `json:"team_name"`
	TeamEmail   string `json:"team_email"`
	RepoURL     string `json:"repo_url,omitempty"`
	DemoURL     string `json:"demo_url,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
}

type RejectProjectRequest struct {
	Reason string `json:"reason"`
}

type FeatureProjectRequest struct {
	ProjectID string `json:"project_id"`
	Featured  bool   `json:"featured"`
}

type ProjectData struct {
	ProjectID       string `json:"project_id"`
	Name            string `json:"name"`
	Summary         string `json:"summary"`
	Description     string `json:"description,omitempty"`
	TeamName        string `json:"team_name"`
	RepoURL         string `json:"repo_url,omitempty"`
	DemoURL         string `json:"demo_url,omitempty"`
	Status          string `json:"approval_status"`
	ApprovedByID    string `json:"accepted_by,omitempty"`
	RejectedByID    string `json:"rejected_by,omitempty"`
	RejectionReason string `json:"rejected_reason,omitempty"`
	Featured        bool   `json:"featured"`
	FeaturedByID    string `json:"featured_by,omitempty"`
	CoverURL        string `json:"cover_url,omitempty"`
	VoteCount       int    `json:"vote_count,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type ProjectResponse struct {
	Status    string      `json:"status"`
	Data      ProjectData `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type ProjectListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items       []ProjectData `json:"items"`
		CurrentPage int           `json:"current_page"`
		TotalPages  int           `json:"total_pages"`
		TotalItems  int64         `json:"total_items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type FeatureResponse struct {
	Status string `json:"status"`
	Data   struct {
		ProjectID  string `json:"project_id"`
		Featured   bool   `json:"featured"`
		FeaturedBy string `json:"featured_by,omitempty"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type DeleteResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
