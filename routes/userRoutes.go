package routes

import (
	"github.com/gin-gonic/gin"

	"civicsync/controllers"
)

func UserRoutes(r *gin.Engine, users *controllers.UserController, requireAuth gin.HandlerFunc) {
	group := r.Group("/api/users", requireAuth)
	{
		group.GET("/me/issues", users.GetMyIssues)
	}
}
