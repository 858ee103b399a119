package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
)

var (
	ErrNotHackathonCreator = errors.New("hackathon not found or you are not the creator")
	ErrNotOrganizer        = errors.New("only organizers can create hackathons")
)

type HackathonService struct {
	hackathonRepo *repositories.HackathonRepository
	favoriteRepo  *repositories.FavoriteRepository
}

func NewHackathonService(hackathonRepo *repositories.HackathonRepository, favoriteRepo *repositories.FavoriteRepository) *HackathonService {
	return &HackathonService{
		hackathonRepo: hackathonRepo,
		favoriteRepo:  favoriteRepo,
	}
}

// ListHackathons retrieves hackathons with optional filters
func (s *HackathonService) ListHackathons(filter repositories.HackathonFilter) ([]*models.Hackathon, error) {
	return s.hackathonRepo.List(filter)
}

// GetHackathonByID retrieves a hackathon
func (s *HackathonService) GetHackathonByID(id string) (*models.Hackathon, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New("invalid hackathon ID format")
	}

	return s.hackathonRepo.GetByID(id)
}

// CreateHackathon creates a user-created draft hackathon
func (s *HackathonService) CreateHackathon(h *models.Hackathon, creator *models.User) error {
	if !creator.IsOrganizer() {
		return ErrNotOrganizer
	}
	if h.Title == "" {
		return errors.New("title is required")
	}
	if h.EndDate.Before(h.StartDate) {
		return errors.New("end date must be after start date")
	}
	if h.MaxTeamSize < 1 {
		return errors.New("max team size must be at least 1")
	}

	return s.hackathonRepo.Create(h)
}

// UpdateHackathon applies edits, restricted to the creator
func (s *HackathonService) UpdateHackathon(h *models.Hackathon, editorID string) error {
	existing, err := s.requireCreator(h.ID.String(), editorID)
	if err != nil {
		return err
	}

	// Publish state changes go through SetPublished
	h.IsPublished = existing.IsPublished

	return s.hackathonRepo.Update(h)
}

// SetPublished flips the publish flag, restricted to the creator
func (s *HackathonService) SetPublished(hackathonID, editorID string, published bool) (*models.Hackathon, error) {
	h, err := s.requireCreator(hackathonID, editorID)
	if err != nil {
		return nil, err
	}

	h.IsPublished = published
	if err := s.hackathonRepo.Update(h); err != nil {
		return nil, err
	}

	return h, nil
}

// AddFavorite marks a hackathon as a user's favorite
func (s *HackathonService) AddFavorite(userID, hackathonID uuid.UUID) error {
	exists, err := s.favoriteRepo.Exists(userID.String(), hackathonID.String())
	if err != nil {
		return err
	}
	if exists {
		return errors.New("hackathon is already a favorite")
	}

	return s.favoriteRepo.Create(models.NewFavoriteHackathon(userID, hackathonID))
}

// ListFavorites returns a user's favorites
func (s *HackathonService) ListFavorites(userID string) ([]*models.FavoriteHackathon, error) {
	return s.favoriteRepo.ListByUser(userID)
}

// RemoveFavorite deletes a user's favorite
func (s *HackathonService) RemoveFavorite(userID, hackathonID string) error {
	return s.favoriteRepo.Delete(userID, hackathonID)
}

// requireCreator loads a hackathon and verifies the user created it
func (s *HackathonService) requireCreator(hackathonID, userID string) (*models.Hackathon, error) {
	h, err := s.hackathonRepo.GetByID(hackathonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotHackathonCreator
		}
		return nil, err
	}

	if !h.IsUserCreated || h.CreatedBy == nil || h.CreatedBy.String() != userID {
		return nil, ErrNotHackathonCreator
	}

	return h, nil
}
