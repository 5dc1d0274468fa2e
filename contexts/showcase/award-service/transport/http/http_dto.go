package httptransport

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type CreateAwardRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Image         string `json:"image,omitempty"`
	ProjectID     string `json:"project_id"`
	CompetitionID string `json:"competition_id"`
}

type RejectAwardRequest struct {
	Reason string `json:"reason"`
}

type AwardData struct {
	AwardID         string `json:"award_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	ProjectID       string `json:"project_id"`
	CompetitionID   string `json:"competition_id"`
	Status          string `json:"approval_status"`
	ApprovedByID    string `json:"accepted_by,omitempty"`
	RejectedByID    string `json:"rejected_by,omitempty"`
	RejectionReason string `json:"rejected_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type AwardResponse struct {
	Status    string    `json:"status"`
	Data      AwardData `json:"data"`
	Timestamp string    `json:"timestamp"`
}

type AwardListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items       []AwardData `json:"items"`
		CurrentPage int         `json:"current_page"`
		TotalPages  int         `json:"total_pages"`
		TotalItems  int64       `json:"total_items"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type DeleteResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
