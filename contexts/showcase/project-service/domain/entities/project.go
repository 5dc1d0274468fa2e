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

// ParseApprovalStatus validates an externally supplied status filter.
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

// Project is a student-team submission. Moderation owns the approval
// fields: approved_by is set iff status is approved, rejected_by and
// rejection_reason are set iff status is rejected, and every
// transition fully overwrites the opposite side.
type Project struct {
	ProjectID       string
	Name            string
	Summary         string
	Description     string
	TeamName        string
	TeamEmail       string
	RepoURL         string
	DemoURL         string
	Status          ApprovalStatus
	ApprovedByID    string
	RejectedByID    string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Project) ValidateCreate() bool {
	return strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.Summary) != "" &&
		strings.TrimSpace(p.TeamName) != "" &&
		strings.TrimSpace(p.TeamEmail) != ""
}

// Showcase is the public-surface metadata row for a project. Featured
// may only be switched on while the project is approved; rejecting a
// project clears the flag in the same transaction.
type Showcase struct {
	ProjectID    string
	Featured     bool
	FeaturedByID string
	CoverURL     string
	UpdatedAt    time.Time
}
