package middleware

import (
	"net/http"
	"strings"
	"time"

	"taproom-admin-api/authz"
	"taproom-admin-api/config"
	"taproom-admin-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session JWT for an admin user. The token
// carries identity only; the role is re-resolved from the roster on every
// request so a role change or removal takes effect immediately.
func GenerateToken(user *models.AdminUser) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired validates the session token, gates it through the entry
// allow-list, resolves the caller's role from admin_users, and stores the
// computed capability set in the request context. Any failure along the way
// means no permissions: a disallowed or unresolvable email gets 401, never a
// partial grant.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// A session for an email off the allow-list is treated as no session
		if !authz.EmailAllowed(claims.Email) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is not permitted to access this application"})
			c.Abort()
			return
		}

		var admin models.AdminUser
		if err := config.DB.Where("email = ?", strings.ToLower(claims.Email)).First(&admin).Error; err != nil {
			// fail closed: no roster row, no permissions
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is not permitted to access this application"})
			c.Abort()
			return
		}

		c.Set("userID", admin.ID)
		c.Set("email", admin.Email)
		c.Set("role", string(admin.Role))
		c.Set("capabilities", authz.Evaluate(admin.Role))
		c.Next()
	}
}

// CapabilityRequired enforces one (action, resource) pair from the
// capability set computed by AuthRequired
func CapabilityRequired(action authz.Action, resource authz.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetCapabilities(c).Can(action, resource) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied: " + string(action) + " on " + string(resource) + " is not permitted for your role",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the caller's admin user ID from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	id, _ := val.(uint)
	return id
}

// GetEmail extracts the caller's email from context
func GetEmail(c *gin.Context) string {
	val, _ := c.Get("email")
	email, _ := val.(string)
	return email
}

// GetRole extracts the caller's resolved role from context
func GetRole(c *gin.Context) models.AdminRole {
	val, _ := c.Get("role")
	role, _ := val.(string)
	return models.AdminRole(role)
}

// GetCapabilities extracts the caller's capability set; absent means deny-all
func GetCapabilities(c *gin.Context) authz.Capabilities {
	val, _ := c.Get("capabilities")
	caps, _ := val.(authz.Capabilities)
	return caps
}
