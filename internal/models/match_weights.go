package models

// MatchWeights holds every scoring constant used by the compatibility
// matcher. Tests override individual fields to pin exact per-factor
// contributions, the same way score settings work elsewhere.
type MatchWeights struct {
	// Skill factors
	SharedProfileSkill        float64 `json:"shared_profile_skill"`
	ComplementaryProfileSkill float64 `json:"complementary_profile_skill"`
	ComplementaryEventSkill   float64 `json:"complementary_event_skill"`

	// Experience proximity by ordinal distance
	ExperienceSame float64 `json:"experience_same"`
	ExperienceNear float64 `json:"experience_near"`
	ExperienceFar  float64 `json:"experience_far"`

	// Location
	LocationExact float64 `json:"location_exact"`
	LocationToken float64 `json:"location_token"`

	// Preferred roles
	RoleSingleOverlap  float64 `json:"role_single_overlap"`
	RoleComplementary  float64 `json:"role_complementary"`
	RoleMultipleShared float64 `json:"role_multiple_shared"`

	// Interests
	SharedInterest float64 `json:"shared_interest"`

	// Track record
	ParticipationPerEvent float64 `json:"participation_per_event"`
	ParticipationCap      float64 `json:"participation_cap"`
	WinPerEvent           float64 `json:"win_per_event"`
	WinCap                float64 `json:"win_cap"`
	RatingMultiplier      float64 `json:"rating_multiplier"`
	RatingCap             float64 `json:"rating_cap"`

	// Team preferences
	BothLookingForTeam float64 `json:"both_looking_for_team"`
	BothOpenToRemote   float64 `json:"both_open_to_remote"`

	// GitHub sub-score
	GithubProfileBase    float64 `json:"github_profile_base"`
	GithubActiveRecently float64 `json:"github_active_recently"`
	GithubInvalidPenalty float64 `json:"github_invalid_penalty"`

	// Final normalization applied before display
	NormalizationFactor float64 `json:"normalization_factor"`
}

// DefaultMatchWeights returns the production scoring policy
func DefaultMatchWeights() *MatchWeights {
	return &MatchWeights{
		SharedProfileSkill:        2.5,
		ComplementaryProfileSkill: 3.5,
		ComplementaryEventSkill:   4.5,

		ExperienceSame: 12,
		ExperienceNear: 8,
		ExperienceFar:  4,

		LocationExact: 8,
		LocationToken: 4,

		RoleSingleOverlap:  10,
		RoleComplementary:  12,
		RoleMultipleShared: 6,

		SharedInterest: 2.5,

		ParticipationPerEvent: 1.5,
		ParticipationCap:      12,
		WinPerEvent:           3,
		WinCap:                10,
		RatingMultiplier:      2,
		RatingCap:             8,

		BothLookingForTeam: 6,
		BothOpenToRemote:   4,

		GithubProfileBase:    5,
		GithubActiveRecently: 8,
		GithubInvalidPenalty: 3,

		NormalizationFactor: 0.87,
	}
}
