package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"civicsync/controllers"
)

// Dependencies are the handlers and middleware the router wires together.
type Dependencies struct {
	Auth           *controllers.AuthController
	Issues         *controllers.IssueController
	Users          *controllers.UserController
	RequireAuth    gin.HandlerFunc
	IssueLimiter   gin.HandlerFunc
	AllowedOrigins []string
}

// New builds the HTTP engine.
func New(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	AuthRoutes(r, d.Auth, d.RequireAuth)
	IssueRoutes(r, d.Issues, d.RequireAuth, d.IssueLimiter)
	UserRoutes(r, d.Users, d.RequireAuth)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return r
}
