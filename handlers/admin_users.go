package handlers

import (
	"net/http"
	"strings"

	"taproom-admin-api/config"
	"taproom-admin-api/middleware"
	"taproom-admin-api/models"
	"taproom-admin-api/pagination"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ListAdminUsers returns the admin roster (super_admin only by capability)
func ListAdminUsers(c *gin.Context) {
	query := config.DB.Model(&models.AdminUser{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		query = pagination.ILike(query, "email", search)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		remoteError(c, "Failed to count admin users", err)
		return
	}

	params := pagination.Parse(c.Request.URL.Query())
	var users []models.AdminUser
	if err := params.Apply(query).Order("email asc").Find(&users).Error; err != nil {
		remoteError(c, "Failed to list admin users", err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(users, count, params.PerPage()))
}

type CreateAdminUserRequest struct {
	Email       string           `json:"email" binding:"required,email"`
	Password    string           `json:"password" binding:"required,min=8"`
	Role        models.AdminRole `json:"role" binding:"required"`
	DisplayName string           `json:"display_name"`
}

// CreateAdminUser adds an entry to the roster
func CreateAdminUser(c *gin.Context) {
	var req CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != models.RoleAdmin && req.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: admin or super_admin"})
		return
	}

	email := strings.ToLower(req.Email)
	var existing models.AdminUser
	if result := config.DB.Where("email = ?", email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already on the roster"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		remoteError(c, "Failed to hash password", err)
		return
	}

	user := models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		DisplayName:  req.DisplayName,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		remoteError(c, "Failed to create admin user", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin user created", "user": user})
}

type UpdateAdminUserRequest struct {
	Role        *models.AdminRole `json:"role"`
	DisplayName *string           `json:"display_name"`
	Password    *string           `json:"password" binding:"omitempty,min=8"`
}

// UpdateAdminUser changes role, display name, or password
func UpdateAdminUser(c *gin.Context) {
	var user models.AdminUser
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin user not found"})
		return
	}

	var req UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	if req.Role != nil {
		if *req.Role != models.RoleAdmin && *req.Role != models.RoleSuperAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: admin or super_admin"})
			return
		}
		update["role"] = *req.Role
	}
	if req.DisplayName != nil {
		update["display_name"] = *req.DisplayName
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			remoteError(c, "Failed to hash password", err)
			return
		}
		update["password_hash"] = string(hash)
	}

	if err := config.DB.Model(&user).Updates(update).Error; err != nil {
		remoteError(c, "Failed to update admin user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin user updated", "user": user})
}

// DeleteAdminUser removes a roster entry. Deleting yourself is refused.
func DeleteAdminUser(c *gin.Context) {
	var user models.AdminUser
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin user not found"})
		return
	}
	if user.ID == middleware.GetUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}
	if err := config.DB.Delete(&user).Error; err != nil {
		remoteError(c, "Failed to delete admin user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin user deleted", "id": user.ID})
}
