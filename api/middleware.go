package api

import (
	"strings"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// RequireUser resolves the bearer token and stores the user in the context.
func RequireUser(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(c, auth.ErrNotAuthenticated)
			return
		}
		user, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole must run after RequireUser.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			writeError(c, auth.ErrNotAuthenticated)
			return
		}
		if user.Role != role {
			writeError(c, errForbidden)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
