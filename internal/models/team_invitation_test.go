package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewTeamInvitationStatus(t *testing.T) {
	t.Run("Leader invitations go straight to the invitee", func(t *testing.T) {
		invitation := NewTeamInvitation(uuid.New(), uuid.New(), uuid.New(), true)
		assert.Equal(t, InvitationStatusPending, invitation.Status)
	})

	t.Run("Member proposals wait for the leader", func(t *testing.T) {
		invitation := NewTeamInvitation(uuid.New(), uuid.New(), uuid.New(), false)
		assert.Equal(t, InvitationStatusLeaderPending, invitation.Status)
	})
}

func TestInvitationExpiry(t *testing.T) {
	invitation := NewTeamInvitation(uuid.New(), uuid.New(), uuid.New(), true)

	assert.False(t, invitation.IsExpired(time.Now()))
	assert.False(t, invitation.IsExpired(time.Now().Add(DefaultInvitationLifetime-time.Minute)))
	assert.True(t, invitation.IsExpired(time.Now().Add(DefaultInvitationLifetime+time.Minute)))
}

func TestInvitationRespond(t *testing.T) {
	invitation := NewTeamInvitation(uuid.New(), uuid.New(), uuid.New(), true)
	assert.Nil(t, invitation.RespondedAt)

	invitation.Respond(InvitationStatusDeclined)

	assert.Equal(t, InvitationStatusDeclined, invitation.Status)
	assert.NotNil(t, invitation.RespondedAt)
}

func TestMembershipTransitions(t *testing.T) {
	t.Run("Join request starts pending", func(t *testing.T) {
		userID := uuid.New()
		request := NewJoinRequest(uuid.New(), userID)

		assert.Equal(t, MembershipStatusPending, request.Status)
		assert.Equal(t, MembershipRoleMember, request.Role)
		assert.Equal(t, &userID, request.InvitedBy)
		assert.Nil(t, request.JoinedAt)
	})

	t.Run("Leader membership starts active", func(t *testing.T) {
		membership := NewLeaderMembership(uuid.New(), uuid.New())

		assert.Equal(t, MembershipStatusActive, membership.Status)
		assert.True(t, membership.IsLeader())
		assert.NotNil(t, membership.JoinedAt)
	})

	t.Run("Activate records the join time", func(t *testing.T) {
		request := NewJoinRequest(uuid.New(), uuid.New())
		request.Activate()

		assert.Equal(t, MembershipStatusActive, request.Status)
		assert.NotNil(t, request.JoinedAt)
	})

	t.Run("Leave records the departure time", func(t *testing.T) {
		membership := NewLeaderMembership(uuid.New(), uuid.New())
		membership.Leave()

		assert.Equal(t, MembershipStatusLeft, membership.Status)
		assert.NotNil(t, membership.LeftAt)
	})
}
