package handlers

import (
	"net/http"

	"taproom-admin-api/config"
	"taproom-admin-api/models"
	"taproom-admin-api/pagination"
	"taproom-admin-api/slug"

	"github.com/gin-gonic/gin"
)

var organizationSortColumns = map[string]bool{
	"name": true, "slug": true, "created_at": true, "updated_at": true,
}

// ListOrganizations returns a page of organizations with the total count
func ListOrganizations(c *gin.Context) {
	query := config.DB.Model(&models.Organization{})

	if search := c.Query("search"); search != "" {
		query = pagination.ILike(query, "name", search)
	}
	if disabled := c.Query("is_disabled"); disabled != "" {
		query = query.Where("is_disabled = ?", disabled == "true")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		remoteError(c, "Failed to count organizations", err)
		return
	}

	params := pagination.Parse(c.Request.URL.Query())
	var orgs []models.Organization
	if err := params.Apply(query).
		Order(params.OrderClause(organizationSortColumns, "name asc")).
		Find(&orgs).Error; err != nil {
		remoteError(c, "Failed to list organizations", err)
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(orgs, count, params.PerPage()))
}

// GetOrganization returns a single organization with its categories
func GetOrganization(c *gin.Context) {
	var org models.Organization
	if err := config.DB.Preload("Categories").First(&org, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": org})
}

type CreateOrganizationRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	BrandColor   string `json:"brand_color"`
}

// CreateOrganization creates an organization; the slug derives from the name
func CreateOrganization(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org := models.Organization{
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		BrandColor:   req.BrandColor,
	}
	if org.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must contain at least one alphanumeric character"})
		return
	}
	if err := config.DB.Create(&org).Error; err != nil {
		remoteError(c, "Failed to create organization", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Organization created", "organization": org})
}

// UpdateOrganization patches an organization. Only safe fields are accepted;
// renaming re-derives the slug.
func UpdateOrganization(c *gin.Context) {
	var org models.Organization
	if err := config.DB.First(&org, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{
		"name": true, "contact_email": true, "contact_phone": true,
		"address": true, "brand_color": true, "is_disabled": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if name, ok := update["name"].(string); ok {
		s := slug.Make(name)
		if s == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must contain at least one alphanumeric character"})
			return
		}
		update["slug"] = s
	}

	if err := config.DB.Model(&org).Updates(update).Error; err != nil {
		remoteError(c, "Failed to update organization", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Organization updated", "organization": org})
}

// DeleteOrganization removes an organization (super_admin only by capability)
func DeleteOrganization(c *gin.Context) {
	var org models.Organization
	if err := config.DB.First(&org, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	if err := config.DB.Delete(&org).Error; err != nil {
		remoteError(c, "Failed to delete organization", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted", "id": org.ID})
}
