package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatchWeights(t *testing.T) {
	w := DefaultMatchWeights()

	assert.Equal(t, 2.5, w.SharedProfileSkill)
	assert.Equal(t, 3.5, w.ComplementaryProfileSkill)
	assert.Equal(t, 4.5, w.ComplementaryEventSkill)

	assert.Equal(t, 12.0, w.ExperienceSame)
	assert.Equal(t, 8.0, w.ExperienceNear)
	assert.Equal(t, 4.0, w.ExperienceFar)

	assert.Equal(t, 8.0, w.LocationExact)
	assert.Equal(t, 4.0, w.LocationToken)

	assert.Equal(t, 10.0, w.RoleSingleOverlap)
	assert.Equal(t, 12.0, w.RoleComplementary)
	assert.Equal(t, 6.0, w.RoleMultipleShared)

	assert.Equal(t, 2.5, w.SharedInterest)

	assert.Equal(t, 1.5, w.ParticipationPerEvent)
	assert.Equal(t, 12.0, w.ParticipationCap)
	assert.Equal(t, 3.0, w.WinPerEvent)
	assert.Equal(t, 10.0, w.WinCap)
	assert.Equal(t, 2.0, w.RatingMultiplier)
	assert.Equal(t, 8.0, w.RatingCap)

	assert.Equal(t, 6.0, w.BothLookingForTeam)
	assert.Equal(t, 4.0, w.BothOpenToRemote)

	assert.Equal(t, 5.0, w.GithubProfileBase)
	assert.Equal(t, 8.0, w.GithubActiveRecently)
	assert.Equal(t, 3.0, w.GithubInvalidPenalty)

	assert.Equal(t, 0.87, w.NormalizationFactor)
}
