package handlers

import (
	"net/http"

	"taproom-admin-api/config"
	"taproom-admin-api/models"
	"taproom-admin-api/pagination"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var menuItemSortColumns = map[string]bool{
	"name": true, "display_order": true, "subcategory": true,
	"created_at": true, "updated_at": true,
}

// ListMenuItems returns a page of menu items with their price variants
func ListMenuItems(c *gin.Context) {
	query := config.DB.Model(&models.MenuItem{})

	if orgID := c.Query("organization_id"); orgID != "" {
		query = query.Where("organization_id = ?", orgID)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if sub := c.Query("subcategory"); sub != "" {
		query = query.Where("subcategory = ?", sub)
	}
	if disabled := c.Query("is_disabled"); disabled != "" {
		query = query.Where("is_disabled = ?", disabled == "true")
	}
	if search := c.Query("search"); search != "" {
		query = pagination.ILike(query, "name", search)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		remoteError(c, "Failed to count menu items", err)
		return
	}

	params := pagination.Parse(c.Request.URL.Query())
	var items []models.MenuItem
	if err := params.Apply(query).
		Preload("Prices").Preload("Category").
		Order(params.OrderClause(menuItemSortColumns, "display_order asc, name asc")).
		Find(&items).Error; err != nil {
		remoteError(c, "Failed to list menu items", err)
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(items, count, params.PerPage()))
}

// GetMenuItem returns a single item with prices and category
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.Preload("Prices").Preload("Category").
		First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

type PriceInput struct {
	Size  string `json:"size" binding:"required"`
	Price int64  `json:"price" binding:"required,gt=0"`
}

type CreateMenuItemRequest struct {
	OrganizationID uint                   `json:"organization_id" binding:"required"`
	CategoryID     *uint                  `json:"category_id"`
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description"`
	Subcategory    string                 `json:"subcategory"`
	ImageURL       string                 `json:"image_url"`
	Metadata       map[string]interface{} `json:"metadata"`
	DisplayOrder   int                    `json:"display_order"`
	Prices         []PriceInput           `json:"prices" binding:"dive"`
}

// CreateMenuItem creates an item together with its initial price list
func CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var org models.Organization
	if err := config.DB.First(&org, req.OrganizationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.Where("organization_id = ?", req.OrganizationID).
			First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not belong to this organization"})
			return
		}
	}

	item := models.MenuItem{
		OrganizationID: req.OrganizationID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Subcategory:    req.Subcategory,
		ImageURL:       req.ImageURL,
		Metadata:       datatypes.JSONMap(req.Metadata),
		DisplayOrder:   req.DisplayOrder,
	}
	for _, p := range req.Prices {
		item.Prices = append(item.Prices, models.PricePerSize{Size: p.Size, Price: p.Price})
	}

	if err := config.DB.Create(&item).Error; err != nil {
		remoteError(c, "Failed to create menu item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

type UpdateMenuItemRequest struct {
	CategoryID   *uint                  `json:"category_id"`
	Name         *string                `json:"name"`
	Description  *string                `json:"description"`
	Subcategory  *string                `json:"subcategory"`
	ImageURL     *string                `json:"image_url"`
	Metadata     map[string]interface{} `json:"metadata"`
	IsDisabled   *bool                  `json:"is_disabled"`
	DisplayOrder *int                   `json:"display_order"`
	// Prices, when present, replaces the entire price list. nil leaves
	// prices untouched; an empty list removes every variant.
	Prices *[]PriceInput `json:"prices" binding:"omitempty,dive"`
}

// UpdateMenuItem patches an item. The price list is never merged: when the
// request carries one, every existing row is deleted and the new rows are
// inserted in the same transaction.
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.Where("organization_id = ?", item.OrganizationID).
			First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not belong to this organization"})
			return
		}
		update["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Subcategory != nil {
		update["subcategory"] = *req.Subcategory
	}
	if req.ImageURL != nil {
		update["image_url"] = *req.ImageURL
	}
	if req.Metadata != nil {
		update["metadata"] = datatypes.JSONMap(req.Metadata)
	}
	if req.IsDisabled != nil {
		update["is_disabled"] = *req.IsDisabled
	}
	if req.DisplayOrder != nil {
		update["display_order"] = *req.DisplayOrder
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if len(update) > 0 {
			if err := tx.Model(&item).Updates(update).Error; err != nil {
				return err
			}
		}
		if req.Prices != nil {
			if err := tx.Where("menu_item_id = ?", item.ID).
				Delete(&models.PricePerSize{}).Error; err != nil {
				return err
			}
			for _, p := range *req.Prices {
				row := models.PricePerSize{MenuItemID: item.ID, Size: p.Size, Price: p.Price}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		remoteError(c, "Failed to update menu item", err)
		return
	}

	config.DB.Preload("Prices").Preload("Category").First(&item, item.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes an item and its price rows
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", item.ID).
			Delete(&models.PricePerSize{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		remoteError(c, "Failed to delete menu item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted", "id": item.ID})
}
