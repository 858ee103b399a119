package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsApplications(t *testing.T) {
	h := &Hackathon{IsUserCreated: true, IsPublished: true}
	assert.True(t, h.AcceptsApplications())

	h.IsPublished = false
	assert.False(t, h.AcceptsApplications())

	// Imported listings never take applications directly
	h = &Hackathon{IsUserCreated: false, IsPublished: true}
	assert.False(t, h.AcceptsApplications())
}
