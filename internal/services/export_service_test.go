package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hackweek-2026", slugify("  HackWeek 2026 "))
	assert.Equal(t, "aiml-night", slugify("AI/ML Night"))
	assert.Equal(t, "hackathon", slugify("!!!"))
}
