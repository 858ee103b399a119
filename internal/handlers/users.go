package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type updateProfileRequest struct {
	Name            string   `json:"name"`
	Username        string   `json:"username"`
	Bio             string   `json:"bio"`
	Location        string   `json:"location"`
	PhoneNumber     string   `json:"phone_number"`
	GithubURL       string   `json:"github_url"`
	LinkedinURL     string   `json:"linkedin_url"`
	PortfolioURL    string   `json:"portfolio_url"`
	Skills          []string `json:"skills"`
	Interests       []string `json:"interests"`
	ExperienceLevel string   `json:"experience_level"`
	Availability    *bool    `json:"availability_status"`
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetUserByID(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser returns a public profile
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies profile edits to the authenticated user
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetUserByID(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.ExperienceLevel != "" {
		user.ExperienceLevel = req.ExperienceLevel
	}
	user.Bio = req.Bio
	user.Location = req.Location
	user.PhoneNumber = req.PhoneNumber
	user.GithubURL = req.GithubURL
	user.LinkedinURL = req.LinkedinURL
	user.PortfolioURL = req.PortfolioURL
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.Availability != nil {
		user.AvailabilityStatus = *req.Availability
	}

	if err := h.userService.UpdateProfile(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
