package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership statuses
const (
	MembershipStatusPending  = "pending"
	MembershipStatusActive   = "active"
	MembershipStatusDeclined = "declined"
	MembershipStatusRemoved  = "removed"
	MembershipStatusLeft     = "left"
)

// Membership roles
const (
	MembershipRoleLeader   = "leader"
	MembershipRoleCoLeader = "co-leader"
	MembershipRoleMember   = "member"
)

type TeamMembership struct {
	ID     uuid.UUID `json:"id"`
	TeamID uuid.UUID `json:"team_id"`
	UserID uuid.UUID `json:"user_id"`

	Role   string `json:"role"`
	Status string `json:"status"`

	SkillsContribution     []string `json:"skills_contribution"`
	PreferredRoleInProject string   `json:"preferred_role_in_project"`

	InvitedAt *time.Time `json:"invited_at,omitempty"`
	JoinedAt  *time.Time `json:"joined_at,omitempty"`
	LeftAt    *time.Time `json:"left_at,omitempty"`

	InvitedBy         *uuid.UUID `json:"invited_by,omitempty"`
	InvitationMessage string     `json:"invitation_message"`

	// Display fields joined in by queries
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// NewJoinRequest creates a self-initiated pending membership
func NewJoinRequest(teamID, userID uuid.UUID) *TeamMembership {
	now := time.Now()
	return &TeamMembership{
		ID:                 uuid.New(),
		TeamID:             teamID,
		UserID:             userID,
		Role:               MembershipRoleMember,
		Status:             MembershipStatusPending,
		SkillsContribution: []string{},
		InvitedAt:          &now,
		InvitedBy:          &userID, // self-request
	}
}

// NewLeaderMembership creates the active leader row for a fresh team
func NewLeaderMembership(teamID, userID uuid.UUID) *TeamMembership {
	now := time.Now()
	return &TeamMembership{
		ID:                 uuid.New(),
		TeamID:             teamID,
		UserID:             userID,
		Role:               MembershipRoleLeader,
		Status:             MembershipStatusActive,
		SkillsContribution: []string{},
		InvitedAt:          &now,
		JoinedAt:           &now,
	}
}

// Activate marks the membership active and records the join time
func (m *TeamMembership) Activate() {
	now := time.Now()
	m.Status = MembershipStatusActive
	m.JoinedAt = &now
}

// Leave marks the membership as left and records the time
func (m *TeamMembership) Leave() {
	now := time.Now()
	m.Status = MembershipStatusLeft
	m.LeftAt = &now
}

// IsLeader reports whether this member leads the team
func (m *TeamMembership) IsLeader() bool {
	return m.Role == MembershipRoleLeader
}
