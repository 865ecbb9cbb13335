package auth

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "calltime-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware provides session-gate middleware for the HTTP layer
type AuthMiddleware struct {
	service *AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service *AuthService) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth validates the bearer token and its backing session, then sets
// the resolved scope on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		session, err := m.service.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("role", session.Role)
		c.Set("client_id", session.ClientID)
		c.Set("session_id", session.ID)

		c.Next()
	}
}

// RequireManager rejects anyone without the manager role. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != RoleManager {
			c.JSON(http.StatusForbidden, gin.H{"error": apperrors.ErrManagerOnly.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireClientScope binds portal requests to their own client: a client
// session may only touch the client id in its token, a manager may touch any.
// Routes using it must carry a :clientId path parameter.
func (m *AuthMiddleware) RequireClientScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
			c.Abort()
			return
		}

		role := c.GetString("role")
		if role == RoleManager {
			c.Set("scoped_client_id", uint(clientID))
			c.Next()
			return
		}

		sessionClientID := c.GetUint("client_id")
		if role != RoleClient || sessionClientID != uint(clientID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Request is scoped to a different client"})
			c.Abort()
			return
		}

		c.Set("scoped_client_id", uint(clientID))
		c.Next()
	}
}
