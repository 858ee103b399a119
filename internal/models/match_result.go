package models

import "github.com/google/uuid"

// MatchResult is one ranked candidate in a compatibility ranking.
// Shared and complementary skills are truncated for display; the full
// sets only influence the score.
type MatchResult struct {
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	ExperienceLevel string    `json:"experience_level"`
	GithubURL       string    `json:"github_url"`

	PreferredRoles []string `json:"preferred_roles"`
	LookingForTeam bool     `json:"looking_for_team"`
	OpenToRemote   bool     `json:"open_to_remote"`
	ProjectIdea    string   `json:"project_idea"`

	HackathonsParticipated int     `json:"hackathons_participated"`
	HackathonsWon          int     `json:"hackathons_won"`
	AverageRating          float64 `json:"average_rating"`

	// RawScore is the unnormalized additive score; Score is the
	// displayed 0-100 integer.
	RawScore float64 `json:"raw_score"`
	Score    int     `json:"score"`

	// SharedSkills shows at most 3 entries, ComplementarySkills at
	// most 5 (profile complements first, then event-skill complements).
	SharedSkills        []string `json:"shared_skills"`
	ComplementarySkills []string `json:"complementary_skills"`

	// SharedEventSkills counts overlap between the skill sets both
	// participants bring to this event. Display only, never scored.
	SharedEventSkills int `json:"shared_event_skills"`

	Github *GitHubActivity `json:"github,omitempty"`
}
