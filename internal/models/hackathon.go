package models

import (
	"time"

	"github.com/google/uuid"
)

// Hackathon platforms
const (
	PlatformMLH      = "mlh"
	PlatformDevfolio = "devfolio"
	PlatformHackmate = "hackmate"
	PlatformOther    = "other"
)

type Hackathon struct {
	ID                   uuid.UUID  `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	Location             string     `json:"location"`
	IsVirtual            bool       `json:"is_virtual"`
	PrizePool            string     `json:"prize_pool"`
	Themes               string     `json:"themes"`
	Sponsors             string     `json:"sponsors"`
	RegistrationDeadline time.Time  `json:"registration_deadline"`
	Requirements         string     `json:"requirements"`
	Tags                 string     `json:"tags"`
	Platform             string     `json:"platform"`
	URL                  string     `json:"url"`
	MaxTeamSize          int        `json:"max_team_size"`
	Participants         int        `json:"participants"`
	Image                string     `json:"image"`
	CreatedBy            *uuid.UUID `json:"created_by,omitempty"`
	IsUserCreated        bool       `json:"is_user_created"`
	IsPublished          bool       `json:"is_published"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewHackathon creates a user-created hackathon in draft state
func NewHackathon(title string, createdBy uuid.UUID) *Hackathon {
	return &Hackathon{
		ID:            uuid.New(),
		Title:         title,
		IsVirtual:     true,
		Platform:      PlatformHackmate,
		MaxTeamSize:   4,
		CreatedBy:     &createdBy,
		IsUserCreated: true,
		IsPublished:   false,
	}
}

// AcceptsApplications reports whether participants can apply
func (h *Hackathon) AcceptsApplications() bool {
	return h.IsUserCreated && h.IsPublished
}

type FavoriteHackathon struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	HackathonID uuid.UUID `json:"hackathon_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewFavoriteHackathon(userID, hackathonID uuid.UUID) *FavoriteHackathon {
	return &FavoriteHackathon{
		ID:          uuid.New(),
		UserID:      userID,
		HackathonID: hackathonID,
	}
}
