package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/services"
)

type InvitationHandler struct {
	invitationService *services.TeamInvitationService
}

func NewInvitationHandler(invitationService *services.TeamInvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

type inviteRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message"`
}

// Invite invites a user to a team by email
func (h *InvitationHandler) Invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.invitationService.Invite(c.Param("id"), middleware.CurrentUserID(c), req.Email, req.Message)
	if err != nil {
		c.JSON(invitationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// Sent lists invitations the authenticated user has sent
func (h *InvitationHandler) Sent(c *gin.Context) {
	invitations, err := h.invitationService.SentInvitations(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// Received lists the authenticated user's pending invitations
func (h *InvitationHandler) Received(c *gin.Context) {
	invitations, err := h.invitationService.ReceivedInvitations(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// Proposed lists member-proposed invitations waiting for the
// authenticated leader's decision
func (h *InvitationHandler) Proposed(c *gin.Context) {
	invitations, err := h.invitationService.ProposedInvitations(middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// Approve forwards a member-proposed invitation to the invitee
func (h *InvitationHandler) Approve(c *gin.Context) {
	if err := h.invitationService.ApproveProposed(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		c.JSON(invitationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": true})
}

// Reject discards a member-proposed invitation
func (h *InvitationHandler) Reject(c *gin.Context) {
	if err := h.invitationService.RejectProposed(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		c.JSON(invitationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rejected": true})
}

// Accept joins the team from a pending invitation
func (h *InvitationHandler) Accept(c *gin.Context) {
	if err := h.invitationService.Accept(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		c.JSON(invitationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accepted": true})
}

// Decline declines a pending invitation
func (h *InvitationHandler) Decline(c *gin.Context) {
	if err := h.invitationService.Decline(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		c.JSON(invitationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"declined": true})
}

func invitationErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrInviteeNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotTeamLeader),
		errors.Is(err, services.ErrNotTeamMember),
		errors.Is(err, services.ErrNotInvitee):
		return http.StatusForbidden
	case errors.Is(err, services.ErrTeamFull),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyInvited),
		errors.Is(err, services.ErrInvitationClosed),
		errors.Is(err, services.ErrInvitationExpired):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
