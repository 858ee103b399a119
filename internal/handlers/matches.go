package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/services"
)

type MatchHandler struct {
	matchingService *services.MatchingService
}

func NewMatchHandler(matchingService *services.MatchingService) *MatchHandler {
	return &MatchHandler{
		matchingService: matchingService,
	}
}

// FindMatches ranks team-seeking applicants of a hackathon by
// compatibility with the authenticated user
func (h *MatchHandler) FindMatches(c *gin.Context) {
	matches, err := h.matchingService.FindMatches(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}
