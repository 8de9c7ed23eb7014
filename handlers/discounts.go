package handlers

import (
	"net/http"

	"taproom-admin-api/config"
	"taproom-admin-api/models"
	"taproom-admin-api/pagination"

	"github.com/gin-gonic/gin"
)

var discountSortColumns = map[string]bool{
	"percent": true, "created_at": true, "updated_at": true,
}

// ListDiscounts returns a page of user discounts
func ListDiscounts(c *gin.Context) {
	query := config.DB.Model(&models.UserDiscount{})

	if orgID := c.Query("organization_id"); orgID != "" {
		query = query.Where("organization_id = ?", orgID)
	}
	if profileID := c.Query("profile_id"); profileID != "" {
		query = query.Where("profile_id = ?", profileID)
	}
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		query = pagination.ILike(query, "label", search)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		remoteError(c, "Failed to count discounts", err)
		return
	}

	params := pagination.Parse(c.Request.URL.Query())
	var discounts []models.UserDiscount
	if err := params.Apply(query).
		Preload("Profile").
		Order(params.OrderClause(discountSortColumns, "created_at desc")).
		Find(&discounts).Error; err != nil {
		remoteError(c, "Failed to list discounts", err)
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(discounts, count, params.PerPage()))
}

// GetDiscount returns a single discount
func GetDiscount(c *gin.Context) {
	var discount models.UserDiscount
	if err := config.DB.Preload("Profile").First(&discount, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount": discount})
}

type CreateDiscountRequest struct {
	ProfileID      uint   `json:"profile_id" binding:"required"`
	OrganizationID uint   `json:"organization_id" binding:"required"`
	Percent        int    `json:"percent" binding:"required,min=1,max=100"`
	Label          string `json:"label"`
}

// CreateDiscount grants a customer a standing discount at one organization
func CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, req.ProfileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	var org models.Organization
	if err := config.DB.First(&org, req.OrganizationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	discount := models.UserDiscount{
		ProfileID:      req.ProfileID,
		OrganizationID: req.OrganizationID,
		Percent:        req.Percent,
		Label:          req.Label,
		IsActive:       true,
	}
	if err := config.DB.Create(&discount).Error; err != nil {
		remoteError(c, "Failed to create discount", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Discount created", "discount": discount})
}

type UpdateDiscountRequest struct {
	Percent  *int    `json:"percent" binding:"omitempty,min=1,max=100"`
	Label    *string `json:"label"`
	IsActive *bool   `json:"is_active"`
}

// UpdateDiscount patches percent, label, or the active flag
func UpdateDiscount(c *gin.Context) {
	var discount models.UserDiscount
	if err := config.DB.First(&discount, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	if req.Percent != nil {
		update["percent"] = *req.Percent
	}
	if req.Label != nil {
		update["label"] = *req.Label
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if err := config.DB.Model(&discount).Updates(update).Error; err != nil {
		remoteError(c, "Failed to update discount", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount updated", "discount": discount})
}

// DeleteDiscount removes a discount
func DeleteDiscount(c *gin.Context) {
	var discount models.UserDiscount
	if err := config.DB.First(&discount, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}
	if err := config.DB.Delete(&discount).Error; err != nil {
		remoteError(c, "Failed to delete discount", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount deleted", "id": discount.ID})
}

// ListProfiles returns customer profiles for the discount and order forms
func ListProfiles(c *gin.Context) {
	query := config.DB.Model(&models.Profile{})
	if search := c.Query("search"); search != "" {
		query = pagination.ILike(query, "email", search)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		remoteError(c, "Failed to count profiles", err)
		return
	}

	params := pagination.Parse(c.Request.URL.Query())
	var profiles []models.Profile
	if err := params.Apply(query).Order("email asc").Find(&profiles).Error; err != nil {
		remoteError(c, "Failed to list profiles", err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(profiles, count, params.PerPage()))
}
