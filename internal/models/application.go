package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses
const (
	ApplicationStatusDraft       = "draft"
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusWaitlisted  = "waitlisted"
)

// HackathonApplication is one participant's application to one hackathon.
// Skills here are the skills the participant brings for this event; they
// can differ from the profile skill set.
type HackathonApplication struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	HackathonID uuid.UUID `json:"hackathon_id"`

	Skills         []string `json:"skills"`
	PreferredRoles []string `json:"preferred_roles"`
	LookingForTeam bool     `json:"looking_for_team"`
	OpenToRemote   bool     `json:"open_to_remote"`
	ProjectIdea    string   `json:"project_idea"`

	Motivation        string `json:"motivation"`
	Goals             string `json:"goals"`
	PreferredTeamSize int    `json:"preferred_team_size"`

	PortfolioURL string `json:"portfolio_url"`
	GithubURL    string `json:"github_url"`
	LinkedinURL  string `json:"linkedin_url"`

	Status        string     `json:"status"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy    *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewerNotes string     `json:"reviewer_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewHackathonApplication creates a draft application
func NewHackathonApplication(userID, hackathonID uuid.UUID) *HackathonApplication {
	return &HackathonApplication{
		ID:                uuid.New(),
		UserID:            userID,
		HackathonID:       hackathonID,
		Skills:            []string{},
		PreferredRoles:    []string{},
		PreferredTeamSize: 4,
		Status:            ApplicationStatusDraft,
	}
}

// Submit marks the application as submitted
func (a *HackathonApplication) Submit() {
	now := time.Now()
	a.Status = ApplicationStatusSubmitted
	a.SubmittedAt = &now
}

// IsValidApplicationStatus reports whether s is a known status value
func IsValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusDraft, ApplicationStatusSubmitted, ApplicationStatusUnderReview,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWaitlisted:
		return true
	}
	return false
}

// ApplicationStats holds per-status application counts for a hackathon
type ApplicationStats struct {
	HackathonID uuid.UUID `json:"hackathon_id"`
	Total       int       `json:"total"`
	Submitted   int       `json:"submitted"`
	Accepted    int       `json:"accepted"`
	Rejected    int       `json:"rejected"`
	Waitlisted  int       `json:"waitlisted"`
}
