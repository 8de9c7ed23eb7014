package handlers

import (
	"fmt"
	"net/http"
	"time"

	"taproom-admin-api/config"
	"taproom-admin-api/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExportOrders streams the filtered order list as an xlsx workbook. The same
// filters as ListOrders apply; pagination does not, the export is the full
// result set.
func ExportOrders(c *gin.Context) {
	query := config.DB.Model(&models.Order{}).Preload("Profile")

	if orgID := c.Query("organization_id"); orgID != "" {
		query = query.Where("organization_id = ?", orgID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if payment := c.Query("payment_status"); payment != "" {
		query = query.Where("payment_status = ?", payment)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		remoteError(c, "Failed to load orders for export", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order #", "Status", "Payment", "Method", "Total", "Discount %", "Discount", "Customer", "Created", "Paid at"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, o := range orders {
		customer := ""
		if o.Profile != nil {
			customer = o.Profile.Email
		}
		pct := 0
		if o.DiscountPercent != nil {
			pct = *o.DiscountPercent
		}
		paidAt := ""
		if o.PaidAt != nil {
			paidAt = o.PaidAt.Format(time.RFC3339)
		}
		values := []interface{}{
			o.OrderNumber, string(o.Status), string(o.PaymentStatus), o.PaymentMethod,
			o.TotalAmount, pct, o.DiscountAmount, customer,
			o.CreatedAt.Format(time.RFC3339), paidAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		// headers are out already; all we can do is log
		log.WithError(err).Error("Failed to stream order export")
	}
}
