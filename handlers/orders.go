package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"taproom-admin-api/config"
	"taproom-admin-api/middleware"
	"taproom-admin-api/models"
	"taproom-admin-api/pagination"
	"taproom-admin-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var orderSortColumns = map[string]bool{
	"order_number": true, "status": true, "total_amount": true,
	"created_at": true, "updated_at": true,
}

// ListOrders returns a page of orders plus a per-status summary for the
// dashboard header
func ListOrders(c *gin.Context) {
	query := config.DB.Model(&models.Order{})

	if orgID := c.Query("organization_id"); orgID != "" {
		query = query.Where("organization_id = ?", orgID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if payment := c.Query("payment_status"); payment != "" {
		query = query.Where("payment_status = ?", payment)
	}
	if search := c.Query("search"); search != "" {
		query = pagination.ILike(query, "order_number", search)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		remoteError(c, "Failed to count orders", err)
		return
	}

	params := pagination.Parse(c.Request.URL.Query())
	var orders []models.Order
	if err := params.Apply(query).
		Preload("Items").Preload("Profile").
		Order(params.OrderClause(orderSortColumns, "created_at desc")).
		Find(&orders).Error; err != nil {
		remoteError(c, "Failed to list orders", err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	page := pagination.NewPage(orders, count, params.PerPage())
	c.JSON(http.StatusOK, gin.H{
		"items":         page.Items,
		"count":         page.Count,
		"page_count":    page.PageCount,
		"order_summary": summary,
	})
}

// GetOrder returns a single order with items, profile, and audit history
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.
		Preload("Items").
		Preload("Profile").
		Preload("Organization").
		Preload("StatusHistory").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type CreateOrderRequest struct {
	OrganizationID uint   `json:"organization_id" binding:"required"`
	ProfileID      *uint  `json:"profile_id"`
	PaymentMethod  string `json:"payment_method"`
	Items          []struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Size       string `json:"size" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder takes a new order in. Line prices snapshot the current
// price-per-size rows; the order starts pending and unpaid.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var org models.Organization
	if err := config.DB.First(&org, req.OrganizationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	if org.IsDisabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization is disabled"})
		return
	}

	var orderItems []models.OrderItem
	var total int64
	for _, reqItem := range req.Items {
		var item models.MenuItem
		if err := config.DB.Where("organization_id = ?", req.OrganizationID).
			First(&item, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found in this organization"})
			return
		}
		if item.IsDisabled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
			return
		}
		var price models.PricePerSize
		if err := config.DB.Where("menu_item_id = ? AND size = ?", item.ID, reqItem.Size).
			First(&price).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No price for size '" + reqItem.Size + "' of '" + item.Name + "'"})
			return
		}
		total += price.Price * int64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Size:       price.Size,
			Quantity:   reqItem.Quantity,
			UnitPrice:  price.Price,
		})
	}

	order := models.Order{
		OrganizationID: req.OrganizationID,
		ProfileID:      req.ProfileID,
		OrderNumber:    newOrderNumber(),
		Status:         models.StatusPending,
		PaymentStatus:  models.PaymentUnpaid,
		PaymentMethod:  req.PaymentMethod,
		TotalAmount:    total,
		Items:          orderItems,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		remoteError(c, "Failed to create order", err)
		return
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: middleware.GetUserID(c),
		Note:      "Order created",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusCreated, gin.H{"message": "Order created", "order": order})
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus moves an order through its lifecycle. Illegal transitions
// are rejected with the valid next states. Entering paid additionally stamps
// the payment status and timestamp; no other transition touches payment.
func UpdateOrderStatus(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	update := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusPaid {
		now := time.Now()
		update["payment_status"] = models.PaymentPaid
		update["paid_at"] = &now
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(update).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  middleware.GetUserID(c),
			Note:       req.Note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		remoteError(c, "Failed to update order status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}

type ApplyDiscountRequest struct {
	Percent    int   `json:"percent" binding:"omitempty,min=1,max=100"`
	DiscountID *uint `json:"discount_id"`
}

// ApplyOrderDiscount reduces an order's total in place. The current total is
// the pre-discount baseline: discount_amount = round(total * pct / (100 +
// pct)). An order that already carries a discount is refused so the math can
// never compound.
func ApplyOrderDiscount(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pct := req.Percent
	if req.DiscountID != nil {
		var discount models.UserDiscount
		if err := config.DB.First(&discount, *req.DiscountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
			return
		}
		if !discount.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Discount is not active"})
			return
		}
		if discount.OrganizationID != order.OrganizationID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Discount belongs to a different organization"})
			return
		}
		pct = discount.Percent
	}
	if pct == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either percent or discount_id"})
		return
	}

	if err := order.ApplyDiscount(pct); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrAlreadyDiscounted) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{
		"discount_percent": order.DiscountPercent,
		"discount_amount":  order.DiscountAmount,
		"total_amount":     order.TotalAmount,
	}
	if err := config.DB.Model(&order).Updates(update).Error; err != nil {
		remoteError(c, "Failed to apply discount", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Discount applied",
		"order_id":         order.ID,
		"discount_percent": pct,
		"discount_amount":  order.DiscountAmount,
		"total_amount":     order.TotalAmount,
	})
}

// DeleteOrder removes an order and its lines (super_admin only by capability)
func DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		remoteError(c, "Failed to delete order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "id": order.ID})
}
