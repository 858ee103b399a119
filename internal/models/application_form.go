package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationForm is an organizer's per-hackathon application template:
// which profile links are mandatory, plus up to three free-text
// questions. One form per hackathon.
type ApplicationForm struct {
	ID          uuid.UUID `json:"id"`
	HackathonID uuid.UUID `json:"hackathon_id"`

	RequiresPortfolio bool `json:"requires_portfolio"`
	RequiresResume    bool `json:"requires_resume"`
	RequiresGithub    bool `json:"requires_github"`
	RequiresLinkedin  bool `json:"requires_linkedin"`

	CustomQuestion1 string `json:"custom_question_1"`
	CustomQuestion2 string `json:"custom_question_2"`
	CustomQuestion3 string `json:"custom_question_3"`

	IsActive bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationResponse holds an applicant's answers to a hackathon's
// custom form questions. One response per application.
type ApplicationResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`

	CustomAnswer1 string `json:"custom_answer_1"`
	CustomAnswer2 string `json:"custom_answer_2"`
	CustomAnswer3 string `json:"custom_answer_3"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewApplicationForm creates an active form for a hackathon
func NewApplicationForm(hackathonID uuid.UUID) *ApplicationForm {
	return &ApplicationForm{
		ID:          uuid.New(),
		HackathonID: hackathonID,
		IsActive:    true,
	}
}

// NewApplicationResponse creates a response record for an application
func NewApplicationResponse(applicationID uuid.UUID) *ApplicationResponse {
	return &ApplicationResponse{
		ID:            uuid.New(),
		ApplicationID: applicationID,
	}
}
