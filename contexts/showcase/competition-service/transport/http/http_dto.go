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

type CreateCompetitionRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Organizer    string `json:"organizer"`
	ContactEmail string `json:"contact_email,omitempty"`
	WebsiteURL   string `json:"website_url,omitempty"`
	StartsAt     string `json:"starts_at"`
	EndsAt       string `json:"ends_at,omitempty"`
}

type RejectCompetitionRequest struct {
	Reason string `json:"reason"`
}

type CompetitionData struct {
	CompetitionID   string `json:"competition_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Organizer       string `json:"organizer"`
	WebsiteURL      string `json:"website_url,omitempty"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at,omitempty"`
	Status          string `json:"approval_status"`
	ApprovedByID    string `json:"accepted_by,omitempty"`
	RejectedByID    string `json:"rejected_by,omitempty"`
	RejectionReason string `json:"rejected_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type CompetitionResponse struct {
	Status    string          `json:"status"`
	Data      CompetitionData `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type CompetitionListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items       []CompetitionData `json:"items"`
		CurrentPage int               `json:"current_page"`
		TotalPages  int               `json:"total_pages"`
		TotalItems  int64             `json:"total_items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type DeleteResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
