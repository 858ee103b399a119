package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Experience levels
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// User roles
const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
	RoleAdmin       = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	PhoneNumber  string    `json:"phone_number"`

	GithubURL    string `json:"github_url"`
	LinkedinURL  string `json:"linkedin_url"`
	PortfolioURL string `json:"portfolio_url"`

	// Skills and Interests are stored as JSON arrays. An empty slice is
	// the only "no skills" state, there is no separate missing state.
	Skills          []string `json:"skills"`
	Interests       []string `json:"interests"`
	ExperienceLevel string   `json:"experience_level"`

	Role string `json:"role"`

	TotalHackathonsParticipated int     `json:"total_hackathons_participated"`
	TotalHackathonsOrganized    int     `json:"total_hackathons_organized"`
	HackathonsWon               int     `json:"hackathons_won"`
	AverageRating               float64 `json:"average_rating"`

	AvailabilityStatus bool `json:"availability_status"`

	OAuthProvider string `json:"-"`
	OAuthID       string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a user with participant defaults
func NewUser(email, name string) *User {
	return &User{
		ID:                 uuid.New(),
		Email:              NormalizeEmail(email),
		Name:               name,
		Skills:             []string{},
		Interests:          []string{},
		ExperienceLevel:    ExperienceBeginner,
		Role:               RoleParticipant,
		AvailabilityStatus: true,
	}
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsOrganizer reports whether the user can manage hackathons
func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer || u.Role == RoleAdmin
}

// IsAdmin reports whether the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ExperienceOrdinal maps the experience level to an ordinal used by the
// matcher. Unrecognized levels count as intermediate.
func ExperienceOrdinal(level string) int {
	switch level {
	case ExperienceBeginner:
		return 0
	case ExperienceIntermediate:
		return 1
	case ExperienceAdvanced:
		return 2
	default:
		return 1
	}
}
