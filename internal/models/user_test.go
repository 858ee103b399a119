package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExperienceOrdinal(t *testing.T) {
	assert.Equal(t, 0, ExperienceOrdinal(ExperienceBeginner))
	assert.Equal(t, 1, ExperienceOrdinal(ExperienceIntermediate))
	assert.Equal(t, 2, ExperienceOrdinal(ExperienceAdvanced))

	// Unknown levels behave like intermediate
	assert.Equal(t, 1, ExperienceOrdinal(""))
	assert.Equal(t, 1, ExperienceOrdinal("guru"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "octo@example.com", NormalizeEmail("  Octo@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
