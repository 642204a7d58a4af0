package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hotelworks/hotel-api/internal/handler"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/service/auth"
	"github.com/hotelworks/hotel-api/internal/service/user"
)

type AuthMiddleware struct {
	authService *auth.Service
	userService *user.Service
}

func NewAuthMiddleware(authService *auth.Service, userService *user.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userService: userService,
	}
}

// Authenticate verifies the bearer token and loads the acting profile
// into the request context. Routes behind this middleware can assume a
// hydrated profile with department and roles.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		profile, err := m.userService.GetProfileByUser(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("user profile does not exist"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID.String())
		c.Set(handler.ProfileKey, profile)
		c.Next()
	}
}

// RequireRole gates a route on an active role membership.
func (m *AuthMiddleware) RequireRole(roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := handler.ActorProfile(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}
		if !profile.HasRole(roleName) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("permission denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireDepartment gates a route on department membership. Admins pass
// regardless of department.
func (m *AuthMiddleware) RequireDepartment(departmentName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := handler.ActorProfile(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}
		if !profile.MemberOf(departmentName) && !profile.HasRole(model.RoleAdmin) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("permission denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}
