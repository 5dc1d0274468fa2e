package entities

import "time"

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(raw string) (ApprovalStatus, bool) {
	switch ApprovalStatus(raw) {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return ApprovalStatus(raw), true
	default:
		return "", false
	}
}

// Award ties a project to a competition it won a prize in. The award
// only associates the two; it never owns either row.
type Award struct {
	AwardID         string
	Name            string
	Description     string
	ImageURL        string
	ProjectID       string
	CompetitionID   string
	Status          ApprovalStatus
	ApprovedByID    string
	RejectedByID    string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Award) ValidateCreate() bool {
	return a.Name != "" && a.ProjectID != "" && a.CompetitionID != ""
}
