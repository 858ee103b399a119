package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
)

type AuthService struct {
	userRepo *repositories.UserRepository
	secret   []byte
	expiry   time.Duration
}

func NewAuthService(userRepo *repositories.UserRepository, secret string, expiryHours int) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		expiry:   time.Duration(expiryHours) * time.Hour,
	}
}

// Register creates a user with a hashed password and returns it with a
// fresh access token
func (s *AuthService) Register(email, password, name, username string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", errors.New("email and password are required")
	}
	if len(password) < 8 {
		return nil, "", errors.New("password must be at least 8 characters")
	}

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.NewUser(email, name)
	user.Username = username
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with an access token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if user.PasswordHash == "" {
		// OAuth-only account
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// IssueToken signs an HS256 access token for the user
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	})

	return token.SignedString(s.secret)
}
