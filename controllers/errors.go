package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"civicsync/logger"
	"civicsync/models"
)

// MaxPageLimit bounds the limit query parameter.
const MaxPageLimit = 100

// respondError writes the JSON error body for err.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, models.ErrRegistrationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed"})
	case errors.Is(err, models.ErrInvalidIssue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrIssueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
	default:
		log.Error("Request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// pageParams reads page and limit, defaulting to 1 and 10. Unparsable values and limits
// out of range fall back to the defaults.
func pageParams(c *gin.Context) (int, int) {
	// Atoi saturates on overflow, which keeps a huge page out of range.
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > MaxPageLimit {
		limit = 10
	}
	return page, limit
}
