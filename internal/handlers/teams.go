package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
	"github.com/hackmate/hackmate/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

type teamRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	HackathonID     string   `json:"hackathon_id" binding:"required"`
	MaxMembers      int      `json:"max_members"`
	RequiredSkills  []string `json:"required_skills"`
	LookingForRoles []string `json:"looking_for_roles"`
	ProjectName     string   `json:"project_name"`
	ProjectIdea     string   `json:"project_idea"`
	GithubRepo      string   `json:"github_repo"`
	DemoURL         string   `json:"demo_url"`
	AllowRemote     *bool    `json:"allow_remote"`
}

type joinRequestBody struct {
	Message string `json:"message"`
}

// CreateTeam creates a team led by the authenticated user
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leaderID, err := uuid.Parse(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return
	}
	hackathonID, err := uuid.Parse(req.HackathonID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hackathon id"})
		return
	}

	team := models.NewTeam(req.Name, hackathonID, leaderID)
	applyTeamRequest(team, &req)

	if err := h.teamService.CreateTeam(team); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrTeamNameTaken) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListTeams lists teams, filterable by hackathon and status
func (h *TeamHandler) ListTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	teams, total, err := h.teamService.ListTeams(repositories.TeamFilter{
		HackathonID: c.Query("hackathon_id"),
		Status:      c.Query("status"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list teams"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
		"total": total,
	})
}

// GetTeam returns a team and its active members
func (h *TeamHandler) GetTeam(c *gin.Context) {
	team, members, err := h.teamService.GetTeam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":    team,
		"members": members,
	})
}

// MyTeams lists teams the authenticated user belongs to
func (h *TeamHandler) MyTeams(c *gin.Context) {
	teams, err := h.teamService.MyTeams(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list teams"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// UpdateTeam edits a team, leader only
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, _, err := h.teamService.GetTeam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	team.Name = req.Name
	applyTeamRequest(team, &req)

	if err := h.teamService.UpdateTeam(team, middleware.CurrentUserID(c)); err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam deletes a team, leader only
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.DeleteTeam(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestToJoin files a pending join request
func (h *TeamHandler) RequestToJoin(c *gin.Context) {
	var req joinRequestBody
	_ = c.ShouldBindJSON(&req)

	membership, err := h.teamService.RequestToJoin(c.Param("id"), middleware.CurrentUserID(c), req.Message)
	if err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// PendingRequests lists pending join requests, leader only
func (h *TeamHandler) PendingRequests(c *gin.Context) {
	requests, err := h.teamService.PendingRequests(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ApproveJoinRequest activates a pending request, leader only
func (h *TeamHandler) ApproveJoinRequest(c *gin.Context) {
	err := h.teamService.ApproveJoinRequest(c.Param("id"), c.Param("user_id"), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": true})
}

// RejectJoinRequest declines a pending request, leader only
func (h *TeamHandler) RejectJoinRequest(c *gin.Context) {
	err := h.teamService.RejectJoinRequest(c.Param("id"), c.Param("user_id"), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rejected": true})
}

// RemoveMember removes an active member, leader only
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	err := h.teamService.RemoveMember(c.Param("id"), c.Param("user_id"), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// LeaveTeam lets the authenticated member leave the team
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	if err := h.teamService.LeaveTeam(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		c.JSON(teamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func applyTeamRequest(team *models.Team, req *teamRequest) {
	team.Description = req.Description
	if req.MaxMembers > 0 {
		team.MaxMembers = req.MaxMembers
	}
	if req.RequiredSkills != nil {
		team.RequiredSkills = req.RequiredSkills
	}
	if req.LookingForRoles != nil {
		team.LookingForRoles = req.LookingForRoles
	}
	team.ProjectName = req.ProjectName
	team.ProjectIdea = req.ProjectIdea
	team.GithubRepo = req.GithubRepo
	team.DemoURL = req.DemoURL
	if req.AllowRemote != nil {
		team.AllowRemote = *req.AllowRemote
	}
}

func teamErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrNoPendingRequest),
		errors.Is(err, services.ErrNotActiveMember):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotTeamLeader),
		errors.Is(err, services.ErrLeaderCannotLeave),
		errors.Is(err, services.ErrCannotRemoveLeader):
		return http.StatusForbidden
	case errors.Is(err, services.ErrTeamFull),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyRequested):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
