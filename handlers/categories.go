package handlers

import (
	"net/http"

	"taproom-admin-api/config"
	"taproom-admin-api/models"
	"taproom-admin-api/pagination"
	"taproom-admin-api/slug"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var categorySortColumns = map[string]bool{
	"name": true, "slug": true, "display_order": true, "created_at": true,
}

// ListCategories returns a page of categories, filterable by organization
func ListCategories(c *gin.Context) {
	query := config.DB.Model(&models.Category{})

	if orgID := c.Query("organization_id"); orgID != "" {
		query = query.Where("organization_id = ?", orgID)
	}
	if search := c.Query("search"); search != "" {
		query = pagination.ILike(query, "name", search)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		remoteError(c, "Failed to count categories", err)
		return
	}

	params := pagination.Parse(c.Request.URL.Query())
	var categories []models.Category
	if err := params.Apply(query).
		Order(params.OrderClause(categorySortColumns, "display_order asc, name asc")).
		Find(&categories).Error; err != nil {
		remoteError(c, "Failed to list categories", err)
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(categories, count, params.PerPage()))
}

// GetCategory returns a single category
func GetCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

type CreateCategoryRequest struct {
	OrganizationID uint   `json:"organization_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	DisplayOrder   int    `json:"display_order"`
	Icon           string `json:"icon"`
}

// CreateCategory creates a category; the slug derives from the name and is
// unique within the organization
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var org models.Organization
	if err := config.DB.First(&org, req.OrganizationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	category := models.Category{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Slug:           slug.Make(req.Name),
		DisplayOrder:   req.DisplayOrder,
		Icon:           req.Icon,
	}
	if category.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must contain at least one alphanumeric character"})
		return
	}
	if err := config.DB.Create(&category).Error; err != nil {
		remoteError(c, "Failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// UpdateCategory patches a category; renaming re-derives the slug
func UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{"name": true, "display_order": true, "icon": true}
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

	if err := config.DB.Model(&category).Updates(update).Error; err != nil {
		remoteError(c, "Failed to update category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
}

// DeleteCategory removes a category; items keep their rows with a dangling
// category cleared
func DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MenuItem{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	}); err != nil {
		remoteError(c, "Failed to delete category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted", "id": category.ID})
}
