package api

import (
	"net/http"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register mounts the auth routes. requireUser guards the routes that act
// on the caller's own session.
func (h *AuthHandler) Register(router *gin.RouterGroup, requireUser gin.HandlerFunc) {
	router.POST("/signup", h.signup)
	router.POST("/login", h.login)
	router.POST("/logout", requireUser, h.logout)
	router.GET("/session", requireUser, h.session)
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Signup(c.Request.Context(), auth.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{User: result.User, Token: result.Token})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{User: result.User, Token: result.Token})
}

func (h *AuthHandler) logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, auth.ErrNotAuthenticated)
		return
	}
	if err := h.service.Logout(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) session(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, auth.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
