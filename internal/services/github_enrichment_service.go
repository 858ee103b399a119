package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/pkg/cache"
	"github.com/hackmate/hackmate/pkg/logger"
	"github.com/hackmate/hackmate/pkg/metrics"
)

// GitHubLookup resolves a raw profile URL value into an enrichment
// record. The matcher depends on this capability instead of a concrete
// client so it can be tested with canned records.
type GitHubLookup func(ctx context.Context, raw interface{}) *models.GitHubActivity

// GitHub usernames: alphanumeric or hyphen, max 39 chars, no leading hyphen
var githubUsernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,38}$`)

// Event types that count toward the contribution estimate
var contributionEventTypes = map[string]bool{
	"PushEvent":        true,
	"CreateEvent":      true,
	"PullRequestEvent": true,
	"IssuesEvent":      true,
}

const (
	// maxRecentEvents bounds the public-event scan per user
	maxRecentEvents = 20

	// contributionsPerEvent and contributionsCap turn the event count
	// into a deliberately coarse yearly contribution estimate
	contributionsPerEvent = 8
	contributionsCap      = 400

	contributionWindow = 365 * 24 * time.Hour
	activityWindow     = 90 * 24 * time.Hour
)

type GitHubEnrichmentService struct {
	client  *github.Client
	cache   *cache.Cache
	metrics *metrics.Manager
	timeout time.Duration
}

func NewGitHubEnrichmentService(client *github.Client, enrichmentCache *cache.Cache, m *metrics.Manager, timeout time.Duration) *GitHubEnrichmentService {
	return &GitHubEnrichmentService{
		client:  client,
		cache:   enrichmentCache,
		metrics: m,
		timeout: timeout,
	}
}

// ParseGitHubUsername validates a raw GitHub URL value and extracts the
// username. The value arrives from loosely typed profile data, so it may
// be absent, malformed, or not a string at all; none of those panic.
func ParseGitHubUsername(raw interface{}) (string, error) {
	if raw == nil {
		return "", errors.New("github url is missing")
	}

	value, ok := raw.(string)
	if !ok {
		return "", errors.New("github url should be a string")
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("github url is missing")
	}

	// Accept scheme-less URLs like "github.com/octocat"
	if !strings.Contains(value, "://") {
		value = "https://" + value
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return "", errors.New("github url is not a valid url")
	}

	if !strings.Contains(strings.ToLower(parsed.Host), "github.com") {
		return "", errors.New("github url must point to github.com")
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", errors.New("github url has no username")
	}

	username := segments[0]
	if !githubUsernamePattern.MatchString(username) {
		return "", errors.New("invalid github username format")
	}

	return username, nil
}

// Lookup resolves a raw URL value into a GitHubActivity record. It never
// returns an error: malformed input yields an invalid record and API
// failures degrade to a valid-URL record with zero stats. Enrichment is
// best-effort and must not abort a ranking.
func (s *GitHubEnrichmentService) Lookup(ctx context.Context, raw interface{}) *models.GitHubActivity {
	username, err := ParseGitHubUsername(raw)
	if err != nil {
		s.countOutcome("invalid")
		return models.InvalidGitHubActivity(err.Error())
	}

	cached := &models.GitHubActivity{}
	if s.cache.GetActivity(ctx, username, cached) {
		s.countOutcome("cache_hit")
		return cached
	}

	activity := s.fetch(ctx, username)

	// Transient failures are not cached so the next ranking retries
	if !activity.APIFailed {
		s.cache.SetActivity(ctx, username, activity)
	}

	return activity
}

func (s *GitHubEnrichmentService) fetch(ctx context.Context, username string) *models.GitHubActivity {
	profileCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, _, err := s.client.Users.Get(profileCtx, username)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			// Valid URL format but no such profile
			s.countOutcome("invalid")
			return models.InvalidGitHubActivity("user not found")
		}

		logger.WithError(err).Warnf("GitHub profile lookup failed for %s", username)
		s.countOutcome("api_failed")
		return &models.GitHubActivity{
			IsValid:   true,
			Username:  username,
			APIFailed: true,
			Reason:    "github api unreachable",
		}
	}

	activity := &models.GitHubActivity{
		IsValid:        true,
		Username:       username,
		ProfileFetched: true,
		PublicRepos:    user.GetPublicRepos(),
		Followers:      user.GetFollowers(),
	}
	if user.CreatedAt != nil {
		created := user.CreatedAt.Time
		activity.AccountCreatedAt = &created
	}

	eventsCtx, cancelEvents := context.WithTimeout(ctx, s.timeout)
	defer cancelEvents()

	events, _, err := s.client.Activity.ListEventsPerformedByUser(eventsCtx, username, true, &github.ListOptions{PerPage: maxRecentEvents})
	if err != nil {
		// Profile data still counts; just no recent-activity stats
		logger.WithError(err).Debugf("GitHub events lookup failed for %s", username)
		s.countOutcome("valid")
		return activity
	}

	summarizeEvents(activity, events, time.Now())
	s.countOutcome("valid")

	return activity
}

// summarizeEvents folds the recent public events into the activity
// record: a bounded contribution estimate over the last year, and an
// active flag for the last 90 days.
func summarizeEvents(activity *models.GitHubActivity, events []*github.Event, now time.Time) {
	if len(events) > maxRecentEvents {
		events = events[:maxRecentEvents]
	}

	qualifying := 0
	for _, event := range events {
		if event.CreatedAt == nil {
			continue
		}
		age := now.Sub(event.CreatedAt.Time)

		if age <= activityWindow {
			activity.ActiveRecently = true
		}

		if age <= contributionWindow && contributionEventTypes[event.GetType()] {
			qualifying++
		}
	}

	contributions := qualifying * contributionsPerEvent
	if contributions > contributionsCap {
		contributions = contributionsCap
	}
	activity.ContributionsLastYear = contributions
}

func (s *GitHubEnrichmentService) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.EnrichmentLookups.WithLabelValues(outcome).Inc()
	}
}
