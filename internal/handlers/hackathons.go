package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
	"github.com/hackmate/hackmate/internal/services"
)

type HackathonHandler struct {
	hackathonService *services.HackathonService
	userService      *services.UserService
	exportService    *services.ExportService
}

func NewHackathonHandler(hackathonService *services.HackathonService, userService *services.UserService,
	exportService *services.ExportService) *HackathonHandler {
	return &HackathonHandler{
		hackathonService: hackathonService,
		userService:      userService,
		exportService:    exportService,
	}
}

type hackathonRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	StartDate            time.Time `json:"start_date" binding:"required"`
	EndDate              time.Time `json:"end_date" binding:"required"`
	Location             string    `json:"location"`
	IsVirtual            *bool     `json:"is_virtual"`
	PrizePool            string    `json:"prize_pool"`
	Themes               string    `json:"themes"`
	Sponsors             string    `json:"sponsors"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	Requirements         string    `json:"requirements"`
	Tags                 string    `json:"tags"`
	URL                  string    `json:"url"`
	MaxTeamSize          int       `json:"max_team_size"`
	Image                string    `json:"image"`
}

// ListHackathons lists hackathons with optional filters
func (h *HackathonHandler) ListHackathons(c *gin.Context) {
	filter := repositories.HackathonFilter{
		Platform: c.Query("platform"),
		Query:    c.Query("q"),
	}
	if v := c.Query("is_virtual"); v != "" {
		isVirtual := v == "true"
		filter.IsVirtual = &isVirtual
	}

	hackathons, err := h.hackathonService.ListHackathons(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hackathons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hackathons": hackathons})
}

// GetHackathon returns one hackathon
func (h *HackathonHandler) GetHackathon(c *gin.Context) {
	hackathon, err := h.hackathonService.GetHackathonByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hackathon not found"})
		return
	}

	c.JSON(http.StatusOK, hackathon)
}

// CreateHackathon creates a draft hackathon, organizers only
func (h *HackathonHandler) CreateHackathon(c *gin.Context) {
	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creator, err := h.userService.GetUserByID(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	hackathon := models.NewHackathon(req.Title, creator.ID)
	applyHackathonRequest(hackathon, &req)

	if err := h.hackathonService.CreateHackathon(hackathon, creator); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotOrganizer) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, hackathon)
}

// UpdateHackathon edits a hackathon, creator only
func (h *HackathonHandler) UpdateHackathon(c *gin.Context) {
	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hackathon, err := h.hackathonService.GetHackathonByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hackathon not found"})
		return
	}

	hackathon.Title = req.Title
	applyHackathonRequest(hackathon, &req)

	if err := h.hackathonService.UpdateHackathon(hackathon, middleware.CurrentUserID(c)); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotHackathonCreator) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, hackathon)
}

// PublishHackathon opens a hackathon for applications, creator only
func (h *HackathonHandler) PublishHackathon(c *gin.Context) {
	h.setPublished(c, true)
}

// UnpublishHackathon takes a hackathon back to draft, creator only
func (h *HackathonHandler) UnpublishHackathon(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *HackathonHandler) setPublished(c *gin.Context, published bool) {
	hackathon, err := h.hackathonService.SetPublished(c.Param("id"), middleware.CurrentUserID(c), published)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotHackathonCreator) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, hackathon)
}

// AddFavorite bookmarks a hackathon for the authenticated user
func (h *HackathonHandler) AddFavorite(c *gin.Context) {
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

	if err := h.hackathonService.AddFavorite(userID, hackathonID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"favorited": true})
}

// ListFavorites returns the authenticated user's bookmarks
func (h *HackathonHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.hackathonService.ListFavorites(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// RemoveFavorite removes a bookmark
func (h *HackathonHandler) RemoveFavorite(c *gin.Context) {
	if err := h.hackathonService.RemoveFavorite(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportApplications streams the hackathon's applications as xlsx,
// creator only
func (h *HackathonHandler) ExportApplications(c *gin.Context) {
	buf, filename, err := h.exportService.ExportApplications(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNotHackathonCreator) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func applyHackathonRequest(hackathon *models.Hackathon, req *hackathonRequest) {
	hackathon.Description = req.Description
	hackathon.StartDate = req.StartDate
	hackathon.EndDate = req.EndDate
	hackathon.Location = req.Location
	if req.IsVirtual != nil {
		hackathon.IsVirtual = *req.IsVirtual
	}
	hackathon.PrizePool = req.PrizePool
	hackathon.Themes = req.Themes
	hackathon.Sponsors = req.Sponsors
	hackathon.RegistrationDeadline = req.RegistrationDeadline
	hackathon.Requirements = req.Requirements
	hackathon.Tags = req.Tags
	hackathon.URL = req.URL
	if req.MaxTeamSize > 0 {
		hackathon.MaxTeamSize = req.MaxTeamSize
	}
	hackathon.Image = req.Image
}
