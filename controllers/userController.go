package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicsync/logger"
	"civicsync/middlewares"
	"civicsync/models"
	"civicsync/services"
)

// UserController serves endpoints scoped to the current user.
type UserController struct {
	Query  *services.IssueQuery
	Logger *logger.Logger
}

// GetMyIssues returns the current user's issues, newest first
func (u *UserController) GetMyIssues(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		respondError(c, u.Logger, models.ErrUnauthenticated)
		return
	}

	page, limit := pageParams(c)
	issues, err := u.Query.ListByReporter(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		respondError(c, u.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"currentPage": page,
		"limit":       limit,
	})
}
