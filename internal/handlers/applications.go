package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/services"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

type applyRequest struct {
	Skills            []string `json:"skills"`
	PreferredRoles    []string `json:"preferred_roles"`
	LookingForTeam    bool     `json:"looking_for_team"`
	OpenToRemote      bool     `json:"open_to_remote"`
	ProjectIdea       string   `json:"project_idea"`
	Motivation        string   `json:"motivation"`
	Goals             string   `json:"goals"`
	PreferredTeamSize int      `json:"preferred_team_size"`
	PortfolioURL      string   `json:"portfolio_url"`
	GithubURL         string   `json:"github_url"`
	LinkedinURL       string   `json:"linkedin_url"`
}

type applicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// Apply submits an application to a hackathon
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := uuid.Parse(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return
	}
	hackathonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hackathon id"})
		return
	}

	application := models.NewHackathonApplication(userID, hackathonID)
	if req.Skills != nil {
		application.Skills = req.Skills
	}
	if req.PreferredRoles != nil {
		application.PreferredRoles = req.PreferredRoles
	}
	application.LookingForTeam = req.LookingForTeam
	application.OpenToRemote = req.OpenToRemote
	application.ProjectIdea = req.ProjectIdea
	application.Motivation = req.Motivation
	application.Goals = req.Goals
	if req.PreferredTeamSize > 0 {
		application.PreferredTeamSize = req.PreferredTeamSize
	}
	application.PortfolioURL = req.PortfolioURL
	application.GithubURL = req.GithubURL
	application.LinkedinURL = req.LinkedinURL

	if err := h.applicationService.Apply(application); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrAlreadyApplied) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// MyApplications lists the authenticated user's applications
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	applications, err := h.applicationService.MyApplications(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// ListForHackathon lists a hackathon's applications, creator only
func (h *ApplicationHandler) ListForHackathon(c *gin.Context) {
	applications, err := h.applicationService.ListForHackathon(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// GetApplication returns one application
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	application, err := h.applicationService.GetApplication(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, services.ErrNotApplicationViewer) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, application)
}

// ChangeStatus moves an application through review, creator only
func (h *ApplicationHandler) ChangeStatus(c *gin.Context) {
	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.applicationService.ChangeStatus(c.Param("id"), middleware.CurrentUserID(c), req.Status, req.Notes)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			status = http.StatusNotFound
		case errors.Is(err, services.ErrNotHackathonCreator):
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

type applicationFormRequest struct {
	RequiresPortfolio bool   `json:"requires_portfolio"`
	RequiresResume    bool   `json:"requires_resume"`
	RequiresGithub    bool   `json:"requires_github"`
	RequiresLinkedin  bool   `json:"requires_linkedin"`
	CustomQuestion1   string `json:"custom_question_1"`
	CustomQuestion2   string `json:"custom_question_2"`
	CustomQuestion3   string `json:"custom_question_3"`
	IsActive          *bool  `json:"is_active"`
}

type applicationResponsesRequest struct {
	CustomAnswer1 string `json:"custom_answer_1"`
	CustomAnswer2 string `json:"custom_answer_2"`
	CustomAnswer3 string `json:"custom_answer_3"`
}

// UpsertForm creates or replaces a hackathon's custom application form,
// creator only
func (h *ApplicationHandler) UpsertForm(c *gin.Context) {
	var req applicationFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hackathonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hackathon id"})
		return
	}

	form := models.NewApplicationForm(hackathonID)
	form.RequiresPortfolio = req.RequiresPortfolio
	form.RequiresResume = req.RequiresResume
	form.RequiresGithub = req.RequiresGithub
	form.RequiresLinkedin = req.RequiresLinkedin
	form.CustomQuestion1 = req.CustomQuestion1
	form.CustomQuestion2 = req.CustomQuestion2
	form.CustomQuestion3 = req.CustomQuestion3
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}

	if err := h.applicationService.UpsertForm(form, middleware.CurrentUserID(c)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, form)
}

// GetForm returns a hackathon's custom application form
func (h *ApplicationHandler) GetForm(c *gin.Context) {
	form, err := h.applicationService.GetForm(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrFormNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, form)
}

// SubmitResponses stores the applicant's answers to the custom form
func (h *ApplicationHandler) SubmitResponses(c *gin.Context) {
	var req applicationResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}

	resp := models.NewApplicationResponse(applicationID)
	resp.CustomAnswer1 = req.CustomAnswer1
	resp.CustomAnswer2 = req.CustomAnswer2
	resp.CustomAnswer3 = req.CustomAnswer3

	if err := h.applicationService.SubmitResponses(resp, middleware.CurrentUserID(c)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetResponses returns an application's custom-form answers
func (h *ApplicationHandler) GetResponses(c *gin.Context) {
	resp, err := h.applicationService.GetResponses(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, services.ErrNotApplicationViewer) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats returns per-status application counts, creator only
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.applicationService.Stats(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
