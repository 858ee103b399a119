package models

import "time"

// GitHubActivity is the enrichment record derived from a participant's
// GitHub profile URL. It is computed on demand and never persisted.
//
// IsValid refers to the URL itself: a record can be valid with APIFailed
// set when the URL parsed fine but GitHub was unreachable. Callers use
// that distinction to tell "no GitHub" apart from "GitHub unreachable".
type GitHubActivity struct {
	IsValid  bool   `json:"is_valid"`
	Username string `json:"username,omitempty"`

	// ContributionsLastYear is a coarse estimate derived from recent
	// public events, not a true contribution count.
	ContributionsLastYear int        `json:"contributions_last_year"`
	PublicRepos           int        `json:"public_repos"`
	Followers             int        `json:"followers"`
	AccountCreatedAt      *time.Time `json:"account_created_at,omitempty"`
	ActiveRecently        bool       `json:"active_recently"`

	// ProfileFetched is set only when the profile call succeeded with
	// data. The base profile score requires it.
	ProfileFetched bool `json:"profile_fetched"`

	APIFailed bool   `json:"api_failed"`
	Reason    string `json:"reason,omitempty"`
}

// InvalidGitHubActivity builds an invalid record with a reason
func InvalidGitHubActivity(reason string) *GitHubActivity {
	return &GitHubActivity{IsValid: false, Reason: reason}
}
