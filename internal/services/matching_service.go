package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
	"github.com/hackmate/hackmate/pkg/metrics"
)

// Display truncation limits for explanation fields
const (
	maxSharedSkillsShown        = 3
	maxComplementarySkillsShown = 5
)

// scoreTier awards a bonus when a stat is strictly above Min
type scoreTier struct {
	Min   int
	Bonus float64
}

// GitHub sub-score tiers, checked highest first
var (
	githubContributionTiers = []scoreTier{{200, 10}, {100, 7}, {50, 5}, {10, 3}}
	githubRepoTiers         = []scoreTier{{20, 6}, {10, 4}, {5, 2}}
	githubFollowerTiers     = []scoreTier{{50, 4}, {10, 2}}
	githubAccountAgeTiers   = []scoreTier{{3, 3}, {1, 2}} // years
)

// MatchingService ranks a hackathon's team-seeking participants by
// compatibility with a requesting participant. Scoring is a pure
// function of the two profiles, the two applications and the
// candidate's GitHub activity; it never mutates its inputs.
type MatchingService struct {
	userRepo        *repositories.UserRepository
	applicationRepo *repositories.ApplicationRepository
	lookup          GitHubLookup
	weights         *models.MatchWeights
	metrics         *metrics.Manager
}

func NewMatchingService(userRepo *repositories.UserRepository, applicationRepo *repositories.ApplicationRepository,
	lookup GitHubLookup, weights *models.MatchWeights, m *metrics.Manager) *MatchingService {
	if weights == nil {
		weights = models.DefaultMatchWeights()
	}
	return &MatchingService{
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		lookup:          lookup,
		weights:         weights,
		metrics:         m,
	}
}

// FindMatches ranks all team-seeking candidates of a hackathon against
// the requesting user. The requester must have applied to the hackathon.
func (s *MatchingService) FindMatches(ctx context.Context, requesterID, hackathonID string) ([]*models.MatchResult, error) {
	started := time.Now()

	requester, err := s.userRepo.GetByID(requesterID)
	if err != nil {
		return nil, errors.New("requester not found")
	}

	requesterApp, err := s.applicationRepo.GetByUserAndHackathon(requesterID, hackathonID)
	if err != nil {
		return nil, errors.New("apply to the hackathon before requesting matches")
	}

	candidates, err := s.applicationRepo.GetTeamSeekingCandidates(hackathonID, requesterID)
	if err != nil {
		return nil, err
	}

	results := s.RankCandidates(ctx, requester, requesterApp, candidates)

	if s.metrics != nil {
		s.metrics.MatchRequests.Inc()
		s.metrics.CandidatesScored.Add(float64(len(results)))
		s.metrics.ScoringLatency.Observe(time.Since(started).Seconds())
	}

	return results, nil
}

// RankCandidates scores every candidate and returns them in descending
// score order. The sort is stable, so candidates with equal scores keep
// their input order; no secondary tie-break key is applied.
func (s *MatchingService) RankCandidates(ctx context.Context, requester *models.User, requesterApp *models.HackathonApplication,
	candidates []*repositories.MatchCandidate) []*models.MatchResult {

	// Enrichment lookups are memoized per unique URL so one ranking
	// request never hits the external API twice for the same profile.
	memo := make(map[string]*models.GitHubActivity)

	results := make([]*models.MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		activity := s.lookupActivity(ctx, memo, candidateGithubURL(candidate))
		results = append(results, s.Score(requester, requesterApp, candidate.User, candidate.Application, activity))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// Score computes one candidate's compatibility record. Pure: inputs are
// never mutated, and identical inputs always produce the same result.
func (s *MatchingService) Score(requester *models.User, requesterApp *models.HackathonApplication,
	candidate *models.User, candidateApp *models.HackathonApplication, activity *models.GitHubActivity) *models.MatchResult {

	w := s.weights
	raw := 0.0

	// 1. Shared profile skills
	sharedSkills := intersect(requester.Skills, candidate.Skills)
	raw += float64(len(sharedSkills)) * w.SharedProfileSkill

	// Shared event skills are shown but never scored
	sharedEventSkills := intersect(requesterApp.Skills, candidateApp.Skills)

	// 2. Complementary skills: what the candidate adds
	complementaryProfile := difference(candidate.Skills, requester.Skills)
	complementaryEvent := difference(candidateApp.Skills, requesterApp.Skills)
	raw += float64(len(complementaryProfile)) * w.ComplementaryProfileSkill
	raw += float64(len(complementaryEvent)) * w.ComplementaryEventSkill

	// 3. Experience proximity
	raw += s.experienceScore(requester.ExperienceLevel, candidate.ExperienceLevel)

	// 4. GitHub activity
	raw += s.githubScore(activity)

	// 5. Location
	raw += s.locationScore(requester.Location, candidate.Location)

	// 6. Preferred roles
	raw += s.roleScore(requesterApp.PreferredRoles, candidateApp.PreferredRoles)

	// 7. Shared interests
	raw += float64(len(intersect(requester.Interests, candidate.Interests))) * w.SharedInterest

	// 8. Track record
	raw += s.trackRecordScore(candidate)

	// 9. Team preferences
	if requesterApp.LookingForTeam && candidateApp.LookingForTeam {
		raw += w.BothLookingForTeam
	}
	if requesterApp.OpenToRemote && candidateApp.OpenToRemote {
		raw += w.BothOpenToRemote
	}

	return &models.MatchResult{
		UserID:          candidate.ID,
		Name:            candidate.Name,
		Username:        candidate.Username,
		Bio:             candidate.Bio,
		Location:        candidate.Location,
		ExperienceLevel: candidate.ExperienceLevel,
		GithubURL:       candidate.GithubURL,

		PreferredRoles: candidateApp.PreferredRoles,
		LookingForTeam: candidateApp.LookingForTeam,
		OpenToRemote:   candidateApp.OpenToRemote,
		ProjectIdea:    candidateApp.ProjectIdea,

		HackathonsParticipated: candidate.TotalHackathonsParticipated,
		HackathonsWon:          candidate.HackathonsWon,
		AverageRating:          candidate.AverageRating,

		RawScore: raw,
		Score:    s.NormalizeScore(raw),

		SharedSkills:        truncate(sharedSkills, maxSharedSkillsShown),
		ComplementarySkills: truncate(append(complementaryProfile, complementaryEvent...), maxComplementarySkillsShown),
		SharedEventSkills:   len(sharedEventSkills),

		Github: activity,
	}
}

// NormalizeScore maps a raw score to the displayed 0-100 integer
func (s *MatchingService) NormalizeScore(raw float64) int {
	score := int(math.Floor(raw * s.weights.NormalizationFactor))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func (s *MatchingService) experienceScore(requesterLevel, candidateLevel string) float64 {
	distance := models.ExperienceOrdinal(requesterLevel) - models.ExperienceOrdinal(candidateLevel)
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return s.weights.ExperienceSame
	case 1:
		return s.weights.ExperienceNear
	default:
		return s.weights.ExperienceFar
	}
}

// githubScore computes the GitHub sub-score. A nil activity means no URL
// was supplied, which is neutral. An invalid record means a URL was
// supplied and failed validation, which is penalized. A valid record
// whose profile call failed scores nothing: the base credit requires
// actual profile data.
func (s *MatchingService) githubScore(activity *models.GitHubActivity) float64 {
	if activity == nil {
		return 0
	}
	if !activity.IsValid {
		return -s.weights.GithubInvalidPenalty
	}
	if !activity.ProfileFetched {
		return 0
	}

	score := s.weights.GithubProfileBase

	if activity.ActiveRecently {
		score += s.weights.GithubActiveRecently
	}

	score += tierBonus(githubContributionTiers, activity.ContributionsLastYear)
	score += tierBonus(githubRepoTiers, activity.PublicRepos)
	score += tierBonus(githubFollowerTiers, activity.Followers)

	if activity.AccountCreatedAt != nil {
		years := int(time.Since(*activity.AccountCreatedAt).Hours() / (24 * 365))
		score += tierBonus(githubAccountAgeTiers, years)
	}

	return score
}

func (s *MatchingService) locationScore(requesterLocation, candidateLocation string) float64 {
	requesterLocation = strings.ToLower(strings.TrimSpace(requesterLocation))
	candidateLocation = strings.ToLower(strings.TrimSpace(candidateLocation))

	if requesterLocation == "" || candidateLocation == "" {
		return 0
	}

	if requesterLocation == candidateLocation {
		return s.weights.LocationExact
	}

	for _, token := range strings.Fields(requesterLocation) {
		if strings.Contains(candidateLocation, token) {
			return s.weights.LocationToken
		}
	}

	return 0
}

func (s *MatchingService) roleScore(requesterRoles, candidateRoles []string) float64 {
	if len(requesterRoles) == 0 || len(candidateRoles) == 0 {
		return 0
	}

	overlap := len(intersect(requesterRoles, candidateRoles))
	complementary := difference(candidateRoles, requesterRoles)

	switch {
	case overlap == 1:
		return s.weights.RoleSingleOverlap
	case overlap == 0 && len(complementary) > 0:
		return s.weights.RoleComplementary
	case overlap > 1:
		return s.weights.RoleMultipleShared
	default:
		return 0
	}
}

func (s *MatchingService) trackRecordScore(candidate *models.User) float64 {
	w := s.weights
	score := math.Min(float64(candidate.TotalHackathonsParticipated)*w.ParticipationPerEvent, w.ParticipationCap)

	if candidate.HackathonsWon > 0 {
		score += math.Min(float64(candidate.HackathonsWon)*w.WinPerEvent, w.WinCap)
	}

	if candidate.AverageRating > 0 {
		score += math.Min(math.Floor(candidate.AverageRating*w.RatingMultiplier), w.RatingCap)
	}

	return score
}

// lookupActivity resolves a candidate's GitHub URL through the injected
// lookup, memoized per URL for the duration of one ranking request.
// An empty URL resolves to nil, which the scorer treats as neutral.
func (s *MatchingService) lookupActivity(ctx context.Context, memo map[string]*models.GitHubActivity, url string) *models.GitHubActivity {
	if url == "" {
		return nil
	}

	if activity, seen := memo[url]; seen {
		return activity
	}

	var activity *models.GitHubActivity
	if s.lookup != nil {
		activity = s.lookup(ctx, url)
	} else {
		activity = models.InvalidGitHubActivity("enrichment unavailable")
	}

	memo[url] = activity
	return activity
}

// candidateGithubURL prefers the per-event URL from the application and
// falls back to the profile URL
func candidateGithubURL(candidate *repositories.MatchCandidate) string {
	if candidate.Application.GithubURL != "" {
		return candidate.Application.GithubURL
	}
	return candidate.User.GithubURL
}

func tierBonus(tiers []scoreTier, value int) float64 {
	for _, tier := range tiers {
		if value > tier.Min {
			return tier.Bonus
		}
	}
	return 0
}

// intersect returns the elements of a that also appear in b, preserving
// a's order. Comparison is exact; skills are stored normalized.
func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, item := range b {
		set[item] = true
	}

	var shared []string
	for _, item := range a {
		if set[item] {
			shared = append(shared, item)
		}
	}
	return shared
}

// difference returns the elements of a missing from b, preserving a's order
func difference(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, item := range b {
		set[item] = true
	}

	var missing []string
	for _, item := range a {
		if !set[item] {
			missing = append(missing, item)
		}
	}
	return missing
}

func truncate(values []string, limit int) []string {
	if values == nil {
		return []string{}
	}
	if len(values) > limit {
		return values[:limit]
	}
	return values
}
