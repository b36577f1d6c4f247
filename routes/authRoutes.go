package routes

import (
	"github.com/gin-gonic/gin"

	"civicsync/controllers"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, auth *controllers.AuthController, requireAuth gin.HandlerFunc) {
	group := r.Group("/api/auth")
	{
		group.POST("/register", auth.RegisterUser)
		group.POST("/login", auth.LoginUser)
		group.POST("/logout", requireAuth, auth.LogoutUser)
		group.GET("/me", auth.GetMe)
	}
}
