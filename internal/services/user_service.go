package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	if id == "" {
		return nil, errors.New("user ID is required")
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New("invalid user ID format")
	}

	return s.userRepo.GetByID(id)
}

// GetUserByEmail retrieves a user by email
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	return s.userRepo.GetByEmail(email)
}

// CreateUser creates a new user
func (s *UserService) CreateUser(user *models.User) error {
	if user.Email == "" {
		return errors.New("email is required")
	}

	return s.userRepo.Create(user)
}

// UpdateProfile applies profile changes to a user
func (s *UserService) UpdateProfile(user *models.User) error {
	if user.ID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if user.ExperienceLevel != models.ExperienceBeginner &&
		user.ExperienceLevel != models.ExperienceIntermediate &&
		user.ExperienceLevel != models.ExperienceAdvanced {
		return errors.New("invalid experience level")
	}

	// Skill and interest sets are stored normalized; empty set is the
	// only "no skills" state
	if user.Skills == nil {
		user.Skills = []string{}
	}
	if user.Interests == nil {
		user.Interests = []string{}
	}

	return s.userRepo.Update(user)
}
