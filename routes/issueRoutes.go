package routes

import (
	"github.com/gin-gonic/gin"

	"civicsync/controllers"
)

// IssueRoutes sets up the issue routes. limiter may be nil.
func IssueRoutes(r *gin.Engine, issues *controllers.IssueController, requireAuth, limiter gin.HandlerFunc) {
	group := r.Group("/api/issues")
	{
		group.GET("", issues.GetAllIssues)
		group.GET("/stats", issues.GetIssueStatistics)
		group.GET("/map", issues.GetMapMarkers)
		group.GET("/:id", issues.GetIssue)

		create := []gin.HandlerFunc{requireAuth}
		if limiter != nil {
			create = append(create, limiter)
		}
		create = append(create, issues.CreateIssue)
		group.POST("", create...)
	}
}
