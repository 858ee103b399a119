package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"

	"github.com/hackmate/hackmate/internal/models"
)

func TestParseGitHubUsername(t *testing.T) {
	testCases := []struct {
		name     string
		raw      interface{}
		expected string
		errMsg   string
	}{
		{"Full https URL", "https://github.com/octocat", "octocat", ""},
		{"Scheme-less URL", "github.com/octocat", "octocat", ""},
		{"URL with trailing path", "https://github.com/octocat/dotfiles", "octocat", ""},
		{"URL with trailing slash", "https://github.com/octocat/", "octocat", ""},
		{"www host", "https://www.github.com/octocat", "octocat", ""},
		{"Whitespace around value", "  https://github.com/octocat  ", "octocat", ""},
		{"Nil value", nil, "", "github url is missing"},
		{"Empty string", "", "", "github url is missing"},
		{"Non-string value", 42, "", "github url should be a string"},
		{"Wrong host", "https://gitlab.com/octocat", "", "github url must point to github.com"},
		{"Host only", "https://github.com/", "", "github url has no username"},
		{"Leading hyphen", "https://github.com/-octocat", "", "invalid github username format"},
		{"Illegal characters", "https://github.com/octo_cat", "", "invalid github username format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			username, err := ParseGitHubUsername(tc.raw)

			if tc.errMsg != "" {
				assert.Error(t, err)
				assert.Equal(t, tc.errMsg, err.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, username)
		})
	}
}

func TestParseGitHubUsernameLength(t *testing.T) {
	longest := "a"
	for len(longest) < 39 {
		longest += "b"
	}

	username, err := ParseGitHubUsername("https://github.com/" + longest)
	assert.NoError(t, err)
	assert.Equal(t, longest, username)

	_, err = ParseGitHubUsername("https://github.com/" + longest + "b")
	assert.Error(t, err)
}

func TestLookupRejectsMalformedInput(t *testing.T) {
	// No cache, no metrics, no API call happens for malformed input
	service := NewGitHubEnrichmentService(github.NewClient(nil), nil, nil, time.Second)

	testCases := []struct {
		name string
		raw  interface{}
	}{
		{"Nil value", nil},
		{"Non-string value", []string{"github.com/octocat"}},
		{"Wrong host", "https://example.com/octocat"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			activity := service.Lookup(context.Background(), tc.raw)

			assert.NotNil(t, activity)
			assert.False(t, activity.IsValid)
			assert.NotEmpty(t, activity.Reason)
			assert.False(t, activity.ProfileFetched)
		})
	}
}

func newStubbedEnrichment(t *testing.T, handler http.Handler) *GitHubEnrichmentService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(server.Client())
	base, err := url.Parse(server.URL + "/")
	assert.NoError(t, err)
	client.BaseURL = base

	return NewGitHubEnrichmentService(client, nil, nil, 2*time.Second)
}

func TestLookupAgainstAPI(t *testing.T) {
	t.Run("Unknown user marks the URL invalid", func(t *testing.T) {
		service := newStubbedEnrichment(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}))

		activity := service.Lookup(context.Background(), "https://github.com/ghost")

		assert.False(t, activity.IsValid)
		assert.Equal(t, "user not found", activity.Reason)
		assert.False(t, activity.APIFailed)
	})

	t.Run("Server errors degrade without invalidating the URL", func(t *testing.T) {
		service := newStubbedEnrichment(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		activity := service.Lookup(context.Background(), "https://github.com/octocat")

		assert.True(t, activity.IsValid)
		assert.True(t, activity.APIFailed)
		assert.False(t, activity.ProfileFetched)
		assert.Equal(t, "octocat", activity.Username)
		assert.Zero(t, activity.ContributionsLastYear)
	})

	t.Run("Profile and events populate the record", func(t *testing.T) {
		recent := time.Now().UTC().Format(time.RFC3339)

		mux := http.NewServeMux()
		mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"login":"octocat","public_repos":12,"followers":30,"created_at":"2015-01-01T00:00:00Z"}`)
		})
		mux.HandleFunc("/users/octocat/events/public", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `[
				{"type":"PushEvent","created_at":"%s"},
				{"type":"WatchEvent","created_at":"%s"}
			]`, recent, recent)
		})

		service := newStubbedEnrichment(t, mux)

		activity := service.Lookup(context.Background(), "https://github.com/octocat")

		assert.True(t, activity.IsValid)
		assert.True(t, activity.ProfileFetched)
		assert.False(t, activity.APIFailed)
		assert.Equal(t, 12, activity.PublicRepos)
		assert.Equal(t, 30, activity.Followers)
		assert.True(t, activity.ActiveRecently)
		assert.Equal(t, 8, activity.ContributionsLastYear)
		if assert.NotNil(t, activity.AccountCreatedAt) {
			assert.Equal(t, 2015, activity.AccountCreatedAt.Year())
		}
	})
}

func eventAt(eventType string, createdAt time.Time) *github.Event {
	return &github.Event{
		Type:      github.String(eventType),
		CreatedAt: &github.Timestamp{Time: createdAt},
	}
}

func TestSummarizeEvents(t *testing.T) {
	now := time.Now()

	t.Run("Recent qualifying events count", func(t *testing.T) {
		activity := &models.GitHubActivity{IsValid: true, ProfileFetched: true}
		events := []*github.Event{
			eventAt("PushEvent", now.Add(-24*time.Hour)),
			eventAt("PullRequestEvent", now.Add(-48*time.Hour)),
			eventAt("WatchEvent", now.Add(-24*time.Hour)), // not a contribution type
		}

		summarizeEvents(activity, events, now)

		assert.True(t, activity.ActiveRecently)
		assert.Equal(t, 16, activity.ContributionsLastYear)
	})

	t.Run("Old events do not mark recent activity", func(t *testing.T) {
		activity := &models.GitHubActivity{IsValid: true, ProfileFetched: true}
		events := []*github.Event{
			eventAt("PushEvent", now.Add(-100*24*time.Hour)),
		}

		summarizeEvents(activity, events, now)

		assert.False(t, activity.ActiveRecently)
		assert.Equal(t, 8, activity.ContributionsLastYear)
	})

	t.Run("Events past the year window are ignored", func(t *testing.T) {
		activity := &models.GitHubActivity{IsValid: true, ProfileFetched: true}
		events := []*github.Event{
			eventAt("PushEvent", now.Add(-400*24*time.Hour)),
		}

		summarizeEvents(activity, events, now)

		assert.False(t, activity.ActiveRecently)
		assert.Equal(t, 0, activity.ContributionsLastYear)
	})

	t.Run("Event scan is bounded", func(t *testing.T) {
		activity := &models.GitHubActivity{IsValid: true, ProfileFetched: true}

		var events []*github.Event
		for i := 0; i < 60; i++ {
			events = append(events, eventAt("PushEvent", now.Add(-time.Hour)))
		}

		summarizeEvents(activity, events, now)

		// Only the first 20 events are considered: 20 * 8, under the cap
		assert.Equal(t, 160, activity.ContributionsLastYear)
	})

	t.Run("Missing timestamps are skipped", func(t *testing.T) {
		activity := &models.GitHubActivity{IsValid: true, ProfileFetched: true}
		events := []*github.Event{
			{Type: github.String("PushEvent")},
		}

		summarizeEvents(activity, events, now)

		assert.False(t, activity.ActiveRecently)
		assert.Equal(t, 0, activity.ContributionsLastYear)
	})
}
