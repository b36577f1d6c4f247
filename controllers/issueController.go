package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicsync/geo"
	"civicsync/logger"
	"civicsync/middlewares"
	"civicsync/models"
	"civicsync/services"
)

// IssueController serves the issue endpoints.
type IssueController struct {
	Query      *services.IssueQuery
	Mutation   *services.IssueMutation
	Projection geo.Projection
	Logger     *logger.Logger
}

// CreateIssue handles the creation of a new issue
func (h *IssueController) CreateIssue(c *gin.Context) {
	var form models.IssueFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.Mutation.Create(c.Request.Context(), form, middlewares.CurrentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues returns one page of issues in creation order
func (h *IssueController) GetAllIssues(c *gin.Context) {
	page, limit := pageParams(c)

	issues, err := h.Query.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"currentPage": page,
		"limit":       limit,
	})
}

// GetIssue retrieves an issue by its ID
func (h *IssueController) GetIssue(c *gin.Context) {
	issue, err := h.Query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// GetIssueStatistics returns status and category counts and the most voted issues
func (h *IssueController) GetIssueStatistics(c *gin.Context) {
	stats, err := h.Query.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMapMarkers returns the issues that fall on the map canvas
func (h *IssueController) GetMapMarkers(c *gin.Context) {
	markers, err := h.Query.MapMarkers(c.Request.Context(), h.Projection)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"width":   h.Projection.Width,
		"height":  h.Projection.Height,
		"markers": markers,
	})
}
