package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
	"github.com/hackmate/hackmate/pkg/config"
)

const oauthProviderGitHub = "github"

type GitHubOAuthService struct {
	oauthConfig *oauth2.Config
	userRepo    *repositories.UserRepository
	authService *AuthService
}

type githubProfile struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
}

func NewGitHubOAuthService(userRepo *repositories.UserRepository, authService *AuthService) *GitHubOAuthService {
	oauthConfig := &oauth2.Config{
		ClientID:     config.AppConfig.GitHub.ClientID,
		ClientSecret: config.AppConfig.GitHub.ClientSecret,
		RedirectURL:  config.AppConfig.GitHub.CallbackURL,
		Scopes: []string{
			"user:email",
			"read:user",
		},
		Endpoint: github.Endpoint,
	}

	return &GitHubOAuthService{
		oauthConfig: oauthConfig,
		userRepo:    userRepo,
		authService: authService,
	}
}

// AuthURL returns the GitHub OAuth authorization URL
func (s *GitHubOAuthService) AuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// HandleCallback exchanges the authorization code, fetches the GitHub
// profile, creates or links the local user, and issues a JWT for them.
func (s *GitHubOAuthService) HandleCallback(ctx context.Context, code string) (*models.User, string, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange code for token: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, "", err
	}
	if profile.Email == "" {
		return nil, "", errors.New("github account has no public email")
	}

	user, err := s.userRepo.GetByEmail(models.NormalizeEmail(profile.Email))
	if err != nil {
		user = models.NewUser(profile.Email, profile.Name)
		if user.Name == "" {
			user.Name = profile.Login
		}
		user.Username = profile.Login
		user.Bio = profile.Bio
		user.Location = profile.Location
		user.GithubURL = profile.HTMLURL
		user.OAuthProvider = oauthProviderGitHub
		user.OAuthID = strconv.Itoa(profile.ID)

		if err := s.userRepo.Create(user); err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		user.OAuthProvider = oauthProviderGitHub
		user.OAuthID = strconv.Itoa(profile.ID)
		if user.GithubURL == "" {
			user.GithubURL = profile.HTMLURL
		}
		if err := s.userRepo.Update(user); err != nil {
			return nil, "", fmt.Errorf("failed to update user: %w", err)
		}
	}

	jwt, err := s.authService.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, jwt, nil
}

func (s *GitHubOAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*githubProfile, error) {
	client := s.oauthConfig.Client(ctx, token)

	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var profile githubProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	return &profile, nil
}
