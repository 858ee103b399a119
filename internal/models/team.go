package models

import (
	"time"

	"github.com/google/uuid"
)

// Team statuses
const (
	TeamStatusLooking  = "looking"
	TeamStatusFull     = "full"
	TeamStatusInactive = "inactive"
)

type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HackathonID uuid.UUID `json:"hackathon_id"`
	LeaderID    uuid.UUID `json:"leader_id"`

	MaxMembers int    `json:"max_members"`
	Status     string `json:"status"`

	RequiredSkills  []string `json:"required_skills"`
	LookingForRoles []string `json:"looking_for_roles"`

	ProjectName string `json:"project_name"`
	ProjectIdea string `json:"project_idea"`
	GithubRepo  string `json:"github_repo"`
	DemoURL     string `json:"demo_url"`

	AllowRemote bool `json:"allow_remote"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ActiveMemberCount is populated by queries, not stored.
	ActiveMemberCount int `json:"current_member_count"`
}

// NewTeam creates a team looking for members
func NewTeam(name string, hackathonID, leaderID uuid.UUID) *Team {
	return &Team{
		ID:              uuid.New(),
		Name:            name,
		HackathonID:     hackathonID,
		LeaderID:        leaderID,
		MaxMembers:      4,
		Status:          TeamStatusLooking,
		RequiredSkills:  []string{},
		LookingForRoles: []string{},
		AllowRemote:     true,
	}
}

// IsFull reports whether the active member count has reached capacity
func (t *Team) IsFull() bool {
	return t.ActiveMemberCount >= t.MaxMembers
}

// SpotsAvailable returns how many members can still join
func (t *Team) SpotsAvailable() int {
	if spots := t.MaxMembers - t.ActiveMemberCount; spots > 0 {
		return spots
	}
	return 0
}

// StatusForMemberCount derives the team status from an active member count
func (t *Team) StatusForMemberCount(activeMembers int) string {
	if activeMembers >= t.MaxMembers {
		return TeamStatusFull
	}
	if activeMembers > 0 {
		return TeamStatusLooking
	}
	return TeamStatusInactive
}
