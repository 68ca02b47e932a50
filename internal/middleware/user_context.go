package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ExtractUserContext reads identity headers injected by the gateway:
//   - X-User-ID: opaque user id
//   - X-User-Role: ADMIN or USER
//
// Missing headers leave the request anonymous. With trustHeaders false the
// headers are ignored and identity only comes from OptionalJWT.
func ExtractUserContext(trustHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !trustHeaders {
			c.Next()
			return
		}
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(UserIDKey, userID)
		}
		if role := c.GetHeader("X-User-Role"); role != "" {
			c.Set(UserRoleKey, strings.ToUpper(role))
		}
		c.Next()
	}
}

// GetUserID returns the caller id, or "" for anonymous requests.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUserRole returns the caller role, or "".
func GetUserRole(c *gin.Context) string {
	return c.GetString(UserRoleKey)
}

// IsAnonymous reports whether no identity was supplied.
func IsAnonymous(c *gin.Context) bool {
	return GetUserID(c) == ""
}

func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == RoleAdmin
}

// RequireRole aborts with 403 unless the caller has one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRole(c)
		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":          "access denied: insufficient role",
			"roles_required": roles,
			"user_role":      userRole,
		})
	}
}
