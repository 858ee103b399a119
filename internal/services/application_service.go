package services

import (
	"database/sql"
	"errors"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
)

var (
	ErrAlreadyApplied       = errors.New("you have already applied to this hackathon")
	ErrHackathonNotOpen     = errors.New("hackathon not found or not open for applications")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrInvalidStatusChange  = errors.New("invalid application status")
	ErrNotApplicationViewer = errors.New("not permitted to view this application")
	ErrFormNotFound         = errors.New("this hackathon has no custom application form")
)

type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
	hackathonRepo   *repositories.HackathonRepository
	formRepo        *repositories.ApplicationFormRepository
}

func NewApplicationService(applicationRepo *repositories.ApplicationRepository, hackathonRepo *repositories.HackathonRepository, formRepo *repositories.ApplicationFormRepository) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		hackathonRepo:   hackathonRepo,
		formRepo:        formRepo,
	}
}

// Apply submits an application to a published user-created hackathon.
// One application per user per hackathon.
func (s *ApplicationService) Apply(a *models.HackathonApplication) error {
	hackathon, err := s.hackathonRepo.GetByID(a.HackathonID.String())
	if err != nil {
		return ErrHackathonNotOpen
	}
	if !hackathon.AcceptsApplications() {
		return ErrHackathonNotOpen
	}

	if _, err := s.applicationRepo.GetByUserAndHackathon(a.UserID.String(), a.HackathonID.String()); err == nil {
		return ErrAlreadyApplied
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	a.Submit()
	return s.applicationRepo.Create(a)
}

// MyApplications returns all of a user's applications
func (s *ApplicationService) MyApplications(userID string) ([]*models.HackathonApplication, error) {
	return s.applicationRepo.ListByUser(userID)
}

// ListForHackathon returns all applications to a hackathon, restricted to
// its creator
func (s *ApplicationService) ListForHackathon(hackathonID, organizerID string) ([]*models.HackathonApplication, error) {
	if err := s.requireOrganizer(hackathonID, organizerID); err != nil {
		return nil, err
	}

	return s.applicationRepo.ListByHackathon(hackathonID)
}

// GetApplication returns an application, visible only to the applicant or
// the hackathon's creator
func (s *ApplicationService) GetApplication(applicationID, viewerID string) (*models.HackathonApplication, error) {
	a, err := s.applicationRepo.GetByID(applicationID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}

	if a.UserID.String() == viewerID {
		return a, nil
	}

	if err := s.requireOrganizer(a.HackathonID.String(), viewerID); err != nil {
		return nil, ErrNotApplicationViewer
	}

	return a, nil
}

// ChangeStatus updates an application's review status, restricted to the
// hackathon's creator
func (s *ApplicationService) ChangeStatus(applicationID, organizerID, status, notes string) error {
	if !models.IsValidApplicationStatus(status) {
		return ErrInvalidStatusChange
	}

	a, err := s.applicationRepo.GetByID(applicationID)
	if err != nil {
		return ErrApplicationNotFound
	}

	if err := s.requireOrganizer(a.HackathonID.String(), organizerID); err != nil {
		return err
	}

	return s.applicationRepo.UpdateStatus(applicationID, status, notes, organizerID)
}

// Stats returns per-status application counts, restricted to the
// hackathon's creator
func (s *ApplicationService) Stats(hackathonID, organizerID string) (*models.ApplicationStats, error) {
	if err := s.requireOrganizer(hackathonID, organizerID); err != nil {
		return nil, err
	}

	return s.applicationRepo.GetStats(hackathonID)
}

// UpsertForm creates or replaces a hackathon's custom application form,
// restricted to its creator
func (s *ApplicationService) UpsertForm(form *models.ApplicationForm, organizerID string) error {
	if err := s.requireOrganizer(form.HackathonID.String(), organizerID); err != nil {
		return err
	}

	return s.formRepo.UpsertForm(form)
}

// GetForm returns a hackathon's custom application form so applicants can
// answer its questions
func (s *ApplicationService) GetForm(hackathonID string) (*models.ApplicationForm, error) {
	form, err := s.formRepo.GetFormByHackathon(hackathonID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFormNotFound
	}
	return form, err
}

// SubmitResponses stores an applicant's answers to the custom form
// questions, overwriting any earlier answers. Only the applicant can do
// this, and an outsider learns nothing beyond "not found".
func (s *ApplicationService) SubmitResponses(resp *models.ApplicationResponse, userID string) error {
	a, err := s.applicationRepo.GetByID(resp.ApplicationID.String())
	if err != nil || a.UserID.String() != userID {
		return ErrApplicationNotFound
	}

	return s.formRepo.UpsertResponse(resp)
}

// GetResponses returns the answers attached to an application, visible to
// the applicant or the hackathon's creator
func (s *ApplicationService) GetResponses(applicationID, viewerID string) (*models.ApplicationResponse, error) {
	if _, err := s.GetApplication(applicationID, viewerID); err != nil {
		return nil, err
	}

	resp, err := s.formRepo.GetResponseByApplication(applicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	return resp, err
}

func (s *ApplicationService) requireOrganizer(hackathonID, userID string) error {
	h, err := s.hackathonRepo.GetByID(hackathonID)
	if err != nil {
		return ErrNotHackathonCreator
	}

	if !h.IsUserCreated || h.CreatedBy == nil || h.CreatedBy.String() != userID {
		return ErrNotHackathonCreator
	}

	return nil
}
