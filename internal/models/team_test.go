package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewTeamDefaults(t *testing.T) {
	hackathonID := uuid.New()
	leaderID := uuid.New()

	team := NewTeam("Night Shift", hackathonID, leaderID)

	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Night Shift", team.Name)
	assert.Equal(t, hackathonID, team.HackathonID)
	assert.Equal(t, leaderID, team.LeaderID)
	assert.Equal(t, TeamStatusLooking, team.Status)
	assert.Equal(t, 4, team.MaxMembers)
	assert.True(t, team.AllowRemote)
	assert.Empty(t, team.RequiredSkills)
}

func TestTeamCapacity(t *testing.T) {
	team := NewTeam("Night Shift", uuid.New(), uuid.New())
	team.MaxMembers = 3

	team.ActiveMemberCount = 2
	assert.False(t, team.IsFull())
	assert.Equal(t, 1, team.SpotsAvailable())

	team.ActiveMemberCount = 3
	assert.True(t, team.IsFull())
	assert.Equal(t, 0, team.SpotsAvailable())

	// Over capacity never reports negative spots
	team.ActiveMemberCount = 5
	assert.True(t, team.IsFull())
	assert.Equal(t, 0, team.SpotsAvailable())
}

func TestStatusForMemberCount(t *testing.T) {
	team := NewTeam("Night Shift", uuid.New(), uuid.New())
	team.MaxMembers = 2

	assert.Equal(t, TeamStatusInactive, team.StatusForMemberCount(0))
	assert.Equal(t, TeamStatusLooking, team.StatusForMemberCount(1))
	assert.Equal(t, TeamStatusFull, team.StatusForMemberCount(2))
	assert.Equal(t, TeamStatusFull, team.StatusForMemberCount(3))
}
