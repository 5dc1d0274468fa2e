package entities

import (
	"strings"
	"time"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(raw string) (ApprovalStatus, bool) {
	switch ApprovalStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case ApprovalStatusPending:
		return ApprovalStatusPending, true
	case ApprovalStatusApproved:
		return ApprovalStatusApproved, true
	case ApprovalStatusRejected:
		return ApprovalStatusRejected, true
	default:
		return "", false
	}
}

// Competition stands alone: it owns no references to other showcase
// entities, awards point at it instead.
type Competition struct {
	CompetitionID   string
	Name            string
	Description     string
	Organizer       string
	ContactEmail    string
	WebsiteURL      string
	StartsAt        time.Time
	EndsAt          *time.Time
	Status          ApprovalStatus
	ApprovedByID    string
	RejectedByID    string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c Competition) ValidateCreate() bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Organizer) != "" &&
		!c.StartsAt.IsZero()
}
