package handlers

import (
	"net/http"
	"strings"

	"taproom-admin-api/authz"
	"taproom-admin-api/config"
	"taproom-admin-api/middleware"
	"taproom-admin-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin and returns a session JWT together with the
// capability set the client uses to gate its controls. The entry allow-list
// is checked before anything else; an email off the list is indistinguishable
// from a bad credential.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !authz.EmailAllowed(req.Email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	var admin models.AdminUser
	if err := config.DB.Where("email = ?", strings.ToLower(req.Email)).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := middleware.GenerateToken(&admin)
	if err != nil {
		remoteError(c, "Failed to generate session token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        token,
		"user":         admin,
		"capabilities": capabilityList(authz.Evaluate(admin.Role)),
	})
}

// Logout acknowledges session termination. Sessions are stateless JWTs, so
// the client discards the token; nothing is stored server-side to revoke.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session returns the current identity and its capability set, re-resolved
// by the auth middleware on this request
func Session(c *gin.Context) {
	var admin models.AdminUser
	if err := config.DB.First(&admin, middleware.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         admin,
		"capabilities": capabilityList(middleware.GetCapabilities(c)),
	})
}

// capabilityList flattens a capability set into "action:resource" strings
// for the client
func capabilityList(caps authz.Capabilities) []string {
	var out []string
	for rule := range caps {
		out = append(out, string(rule.Action)+":"+string(rule.Resource))
	}
	return out
}
