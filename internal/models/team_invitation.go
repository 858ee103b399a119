package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation statuses
const (
	// InvitationStatusLeaderPending marks a member-proposed invitation
	// awaiting the leader's approval before it is offered to the invitee.
	InvitationStatusLeaderPending = "leader_pending"
	InvitationStatusPending       = "pending"
	InvitationStatusAccepted      = "accepted"
	InvitationStatusDeclined      = "declined"
	InvitationStatusRejected      = "rejected"
	InvitationStatusExpired       = "expired"
)

// DefaultInvitationLifetime is how long a pending invitation stays valid.
const DefaultInvitationLifetime = 48 * time.Hour

type TeamInvitation struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	InviterID uuid.UUID `json:"inviter_id"`
	InviteeID uuid.UUID `json:"invitee_id"`

	Message string `json:"message"`
	Status  string `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`

	// Display fields joined in by queries
	TeamName     string `json:"team_name,omitempty"`
	InviterName  string `json:"inviter_name,omitempty"`
	InviteeEmail string `json:"invitee_email,omitempty"`
}

// NewTeamInvitation creates an invitation. Invitations sent by the team
// leader start as pending; anyone else's start as leader_pending.
func NewTeamInvitation(teamID, inviterID, inviteeID uuid.UUID, fromLeader bool) *TeamInvitation {
	status := InvitationStatusLeaderPending
	if fromLeader {
		status = InvitationStatusPending
	}
	return &TeamInvitation{
		ID:        uuid.New(),
		TeamID:    teamID,
		InviterID: inviterID,
		InviteeID: inviteeID,
		Status:    status,
		ExpiresAt: time.Now().Add(DefaultInvitationLifetime),
	}
}

// IsExpired reports whether the invitation is past its expiry time
func (i *TeamInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Respond sets a terminal status and records the response time
func (i *TeamInvitation) Respond(status string) {
	now := time.Now()
	i.Status = status
	i.RespondedAt = &now
}
