package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
)

func newTestMatcher(weights *models.MatchWeights, lookup GitHubLookup) *MatchingService {
	return NewMatchingService(nil, nil, lookup, weights, nil)
}

func testUser(skills []string, level string) *models.User {
	return &models.User{
		ID:              uuid.New(),
		Skills:          skills,
		Interests:       []string{},
		ExperienceLevel: level,
	}
}

func testApplication(skills, roles []string) *models.HackathonApplication {
	return &models.HackathonApplication{
		ID:             uuid.New(),
		Skills:         skills,
		PreferredRoles: roles,
	}
}

func TestScoreFactorSum(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	requester := testUser([]string{"go", "python"}, models.ExperienceBeginner)
	requester.Interests = []string{"ai"}
	requesterApp := testApplication([]string{"go"}, []string{"backend"})
	requesterApp.LookingForTeam = true

	candidate := testUser([]string{"go", "react"}, models.ExperienceAdvanced)
	candidateApp := testApplication([]string{"go"}, []string{"frontend"})
	candidateApp.LookingForTeam = true
	candidateApp.OpenToRemote = true

	result := matcher.Score(requester, requesterApp, candidate, candidateApp, nil)

	// shared profile skill 2.5, complementary profile 3.5, experience
	// two levels apart 4, complementary roles 12, both looking 6
	assert.InDelta(t, 28.0, result.RawScore, 0.0001)
	assert.Equal(t, 24, result.Score)

	assert.Equal(t, []string{"go"}, result.SharedSkills)
	assert.Equal(t, []string{"react"}, result.ComplementarySkills)
	assert.Equal(t, 1, result.SharedEventSkills)
}

func TestScoreDoesNotMutateInputs(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	requester := testUser([]string{"go", "rust"}, models.ExperienceIntermediate)
	requesterApp := testApplication([]string{"go"}, []string{"backend"})
	candidate := testUser([]string{"rust", "go"}, models.ExperienceIntermediate)
	candidateApp := testApplication([]string{"sql"}, []string{"backend"})

	first := matcher.Score(requester, requesterApp, candidate, candidateApp, nil)
	second := matcher.Score(requester, requesterApp, candidate, candidateApp, nil)

	assert.Equal(t, first.RawScore, second.RawScore)
	assert.Equal(t, []string{"go", "rust"}, requester.Skills)
	assert.Equal(t, []string{"rust", "go"}, candidate.Skills)
}

func TestNormalizeScore(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	testCases := []struct {
		name     string
		raw      float64
		expected int
	}{
		{"Zero stays zero", 0, 0},
		{"Spec-like mid score floors", 19.5, 16},
		{"Negative clamps to zero", -10, 0},
		{"Just below the cap floors", 114.9, 99},
		{"Large raw clamps to 100", 200, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matcher.NormalizeScore(tc.raw))
		})
	}
}

func TestExperienceScore(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	assert.Equal(t, 12.0, matcher.experienceScore(models.ExperienceBeginner, models.ExperienceBeginner))
	assert.Equal(t, 8.0, matcher.experienceScore(models.ExperienceBeginner, models.ExperienceIntermediate))
	assert.Equal(t, 4.0, matcher.experienceScore(models.ExperienceBeginner, models.ExperienceAdvanced))

	// Unknown levels count as intermediate
	assert.Equal(t, 12.0, matcher.experienceScore("", models.ExperienceIntermediate))
	assert.Equal(t, 8.0, matcher.experienceScore("wizard", models.ExperienceAdvanced))
}

func TestGithubScore(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	t.Run("No URL is neutral", func(t *testing.T) {
		assert.Equal(t, 0.0, matcher.githubScore(nil))
	})

	t.Run("Invalid URL is penalized", func(t *testing.T) {
		activity := models.InvalidGitHubActivity("invalid github username format")
		assert.Equal(t, -3.0, matcher.githubScore(activity))
	})

	t.Run("API failure scores nothing", func(t *testing.T) {
		activity := &models.GitHubActivity{IsValid: true, APIFailed: true}
		assert.Equal(t, 0.0, matcher.githubScore(activity))
	})

	t.Run("Fetched profile earns the base credit", func(t *testing.T) {
		activity := &models.GitHubActivity{IsValid: true, ProfileFetched: true}
		assert.Equal(t, 5.0, matcher.githubScore(activity))
	})

	t.Run("All bonuses stack", func(t *testing.T) {
		created := time.Now().AddDate(-5, 0, 0)
		activity := &models.GitHubActivity{
			IsValid:               true,
			ProfileFetched:        true,
			ActiveRecently:        true,
			ContributionsLastYear: 250,
			PublicRepos:           25,
			Followers:             60,
			AccountCreatedAt:      &created,
		}

		// base 5 + active 8 + contributions 10 + repos 6 + followers 4 + age 3
		assert.Equal(t, 36.0, matcher.githubScore(activity))
	})

	t.Run("Tier boundaries are exclusive", func(t *testing.T) {
		activity := &models.GitHubActivity{
			IsValid:               true,
			ProfileFetched:        true,
			ContributionsLastYear: 10,
			PublicRepos:           5,
			Followers:             10,
		}

		// Exactly at a boundary earns nothing from that tier
		assert.Equal(t, 5.0, matcher.githubScore(activity))
	})
}

func TestLocationScore(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	testCases := []struct {
		name      string
		requester string
		candidate string
		expected  float64
	}{
		{"Exact match", "Berlin", "Berlin", 8},
		{"Case and whitespace insensitive", "  berlin ", "BERLIN", 8},
		{"Token substring match", "Berlin Germany", "Greater Berlin Area", 4},
		{"No overlap", "Berlin", "Paris", 0},
		{"Requester empty", "", "Berlin", 0},
		{"Candidate empty", "Berlin", "", 0},
		{"Both empty", "", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matcher.locationScore(tc.requester, tc.candidate))
		})
	}
}

func TestRoleScore(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	testCases := []struct {
		name      string
		requester []string
		candidate []string
		expected  float64
	}{
		{"Single shared role", []string{"backend"}, []string{"backend"}, 10},
		{"Fully complementary roles", []string{"backend"}, []string{"frontend", "design"}, 12},
		{"Multiple shared roles", []string{"backend", "devops"}, []string{"backend", "devops"}, 6},
		{"One shared plus extras", []string{"backend"}, []string{"backend", "frontend"}, 10},
		{"Requester has none", nil, []string{"backend"}, 0},
		{"Candidate has none", []string{"backend"}, nil, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matcher.roleScore(tc.requester, tc.candidate))
		})
	}
}

func TestTrackRecordScore(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	t.Run("Everything capped", func(t *testing.T) {
		candidate := &models.User{
			TotalHackathonsParticipated: 10,
			HackathonsWon:               2,
			AverageRating:               4.3,
		}

		// participation min(15, 12), wins 6, rating floor(8.6) capped at 8
		assert.Equal(t, 26.0, matcher.trackRecordScore(candidate))
	})

	t.Run("Zero wins and rating add nothing", func(t *testing.T) {
		candidate := &models.User{TotalHackathonsParticipated: 2}
		assert.Equal(t, 3.0, matcher.trackRecordScore(candidate))
	})
}

func TestScoreWithCustomWeights(t *testing.T) {
	weights := models.DefaultMatchWeights()
	weights.SharedProfileSkill = 10
	weights.NormalizationFactor = 1
	matcher := newTestMatcher(weights, nil)

	requester := testUser([]string{"go"}, models.ExperienceIntermediate)
	requesterApp := testApplication(nil, nil)
	candidate := testUser([]string{"go"}, models.ExperienceIntermediate)
	candidateApp := testApplication(nil, nil)

	result := matcher.Score(requester, requesterApp, candidate, candidateApp, nil)

	// shared skill 10 + same experience 12, no normalization shrink
	assert.InDelta(t, 22.0, result.RawScore, 0.0001)
	assert.Equal(t, 22, result.Score)
}

func TestRankCandidatesOrdering(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	requester := testUser([]string{"go", "python", "sql"}, models.ExperienceIntermediate)
	requesterApp := testApplication(nil, nil)

	strong := &repositories.MatchCandidate{
		User:        testUser([]string{"go", "python", "sql"}, models.ExperienceIntermediate),
		Application: testApplication(nil, nil),
	}
	weak := &repositories.MatchCandidate{
		User:        testUser([]string{"cobol"}, models.ExperienceIntermediate),
		Application: testApplication(nil, nil),
	}

	results := matcher.RankCandidates(context.Background(), requester, requesterApp,
		[]*repositories.MatchCandidate{weak, strong})

	assert.Len(t, results, 2)
	assert.Equal(t, strong.User.ID, results[0].UserID)
	assert.Equal(t, weak.User.ID, results[1].UserID)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestRankCandidatesStableTies(t *testing.T) {
	matcher := newTestMatcher(nil, nil)

	requester := testUser([]string{"go"}, models.ExperienceIntermediate)
	requesterApp := testApplication(nil, nil)

	var candidates []*repositories.MatchCandidate
	for i := 0; i < 5; i++ {
		candidates = append(candidates, &repositories.MatchCandidate{
			User:        testUser([]string{"go"}, models.ExperienceIntermediate),
			Application: testApplication(nil, nil),
		})
	}

	results := matcher.RankCandidates(context.Background(), requester, requesterApp, candidates)

	assert.Len(t, results, 5)
	for i, candidate := range candidates {
		assert.Equal(t, candidate.User.ID, results[i].UserID, "equal scores must keep input order")
	}
}

func TestRankCandidatesMemoizesLookups(t *testing.T) {
	calls := make(map[string]int)
	lookup := func(ctx context.Context, raw interface{}) *models.GitHubActivity {
		calls[raw.(string)]++
		return &models.GitHubActivity{IsValid: true, ProfileFetched: true}
	}
	matcher := newTestMatcher(nil, lookup)

	requester := testUser(nil, models.ExperienceIntermediate)
	requesterApp := testApplication(nil, nil)

	shared := testUser(nil, models.ExperienceIntermediate)
	shared.GithubURL = "https://github.com/octocat"
	twin := testUser(nil, models.ExperienceIntermediate)
	twin.GithubURL = "https://github.com/octocat"
	other := testUser(nil, models.ExperienceIntermediate)
	other.GithubURL = "https://github.com/defunkt"

	candidates := []*repositories.MatchCandidate{
		{User: shared, Application: testApplication(nil, nil)},
		{User: twin, Application: testApplication(nil, nil)},
		{User: other, Application: testApplication(nil, nil)},
	}

	matcher.RankCandidates(context.Background(), requester, requesterApp, candidates)

	assert.Equal(t, 1, calls["https://github.com/octocat"])
	assert.Equal(t, 1, calls["https://github.com/defunkt"])
}

func TestCandidateGithubURLPreference(t *testing.T) {
	user := testUser(nil, models.ExperienceIntermediate)
	user.GithubURL = "https://github.com/profile"

	app := testApplication(nil, nil)

	candidate := &repositories.MatchCandidate{User: user, Application: app}
	assert.Equal(t, "https://github.com/profile", candidateGithubURL(candidate))

	app.GithubURL = "https://github.com/event"
	assert.Equal(t, "https://github.com/event", candidateGithubURL(candidate))
}

func TestIntersectAndDifference(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, intersect([]string{"a", "b", "c"}, []string{"c", "a"}))
	assert.Nil(t, intersect([]string{"a"}, []string{"b"}))

	assert.Equal(t, []string{"b"}, difference([]string{"a", "b"}, []string{"a"}))
	assert.Nil(t, difference([]string{"a"}, []string{"a"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, []string{}, truncate(nil, 3))
	assert.Equal(t, []string{"a", "b", "c"}, truncate([]string{"a", "b", "c", "d"}, 3))
	assert.Equal(t, []string{"a"}, truncate([]string{"a"}, 3))
}
