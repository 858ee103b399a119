package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hackmate/hackmate/internal/services"
	"github.com/hackmate/hackmate/pkg/config"
)

func setupOAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		GitHub: config.GitHubConfig{
			ClientID:    "client-id",
			CallbackURL: "http://localhost:8080/api/v1/auth/github/callback",
		},
	}

	handler := NewAuthHandler(nil, services.NewGitHubOAuthService(nil, nil))
	router := gin.New()
	router.GET("/auth/github", handler.GitHubLogin)
	router.GET("/auth/github/callback", handler.GitHubCallback)
	return router
}

func oauthStateFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "oauth_state" {
			return cookie.Value
		}
	}
	t.Fatal("no oauth_state cookie set")
	return ""
}

func TestGitHubLoginState(t *testing.T) {
	router := setupOAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)

	state := oauthStateFrom(t, w)
	assert.NotEmpty(t, state)

	// The redirect carries the same state the cookie holds.
	location, err := url.Parse(w.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Equal(t, state, location.Query().Get("state"))

	// Each login gets a fresh state.
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/auth/github", nil))
	assert.NotEqual(t, state, oauthStateFrom(t, second))
}

func TestGitHubCallbackRejectsBadState(t *testing.T) {
	router := setupOAuthRouter(t)

	testCases := []struct {
		name   string
		cookie string
		query  string
	}{
		{"Missing cookie", "", "state=abc"},
		{"Mismatched state", "expected", "state=tampered"},
		{"Missing query state", "expected", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=abc&"+tc.query, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "oauth_state", Value: tc.cookie})
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid oauth state")
		})
	}
}
