package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicsync/logger"
	"civicsync/middlewares"
	"civicsync/models"
	"civicsync/services"
	authUtils "civicsync/utils"
)

// AuthController exposes the session over HTTP.
type AuthController struct {
	Session    *services.Session
	JWTSecret  string
	Domain     string
	Production bool
	Logger     *logger.Logger
}

// setAuthCookie issues a token for user and stores it in the auth_token cookie.
func (a *AuthController) setAuthCookie(c *gin.Context, user models.User) error {
	token, err := authUtils.GenerateToken(a.JWTSecret, user.ID)
	if err != nil {
		return err
	}

	domain := a.Domain
	// For production, don't set domain to allow cross-origin cookies
	if a.Production {
		domain = ""
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.AuthCookie,
		Value:    token,
		MaxAge:   int(authUtils.TokenTTL.Seconds()),
		Path:     "/",
		Domain:   domain,
		Secure:   a.Production,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
	return nil
}

// RegisterUser handles user registration
func (a *AuthController) RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Session.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, a.Logger, err)
		return
	}

	if err := a.setAuthCookie(c, user); err != nil {
		respondError(c, a.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// LoginUser handles user login
func (a *AuthController) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Session.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, a.Logger, err)
		return
	}

	if err := a.setAuthCookie(c, user); err != nil {
		respondError(c, a.Logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMe reports the session state and current user.
func (a *AuthController) GetMe(c *gin.Context) {
	response := gin.H{
		"isAuthenticated": a.Session.IsAuthenticated(),
		"isLoading":       a.Session.IsLoading(),
		"user":            nil,
	}
	if user, ok := a.Session.CurrentUser(); ok {
		response["user"] = user
	}
	c.JSON(http.StatusOK, response)
}

// LogoutUser ends the session and clears the auth_token cookie
func (a *AuthController) LogoutUser(c *gin.Context) {
	a.Session.Logout(c.Request.Context())

	c.SetCookie(middlewares.AuthCookie, "", -1, "/", a.Domain, a.Production, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
