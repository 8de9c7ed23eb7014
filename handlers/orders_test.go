package handlers_test

import (
	"net/http"
	"testing"

	"taproom-admin-api/config"
	"taproom-admin-api/models"
)

func seedOrder(t *testing.T, env *testEnv, orgID uint) models.Order {
	t.Helper()
	item := seedMenuItem(t, env, orgID, []map[string]interface{}{
		{"size": "pint", "price": 55000},
	})
	status, resp := env.do(t, http.MethodPost, "/api/orders", env.superToken,
		map[string]interface{}{
			"organization_id": orgID,
			"payment_method":  "card",
			"items": []map[string]interface{}{
				{"menu_item_id": item.ID, "size": "pint", "quantity": 2},
			},
		})
	if status != http.StatusCreated {
		t.Fatalf("seed order: status %d, resp %v", status, resp)
	}
	var order models.Order
	if err := config.DB.Order("id desc").First(&order).Error; err != nil {
		t.Fatal(err)
	}
	return order
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	if order.TotalAmount != 110000 {
		t.Errorf("total = %d, want 110000", order.TotalAmount)
	}
	if order.Status != models.StatusPending || order.PaymentStatus != models.PaymentUnpaid {
		t.Errorf("new order should be pending/unpaid, got %s/%s", order.Status, order.PaymentStatus)
	}
	if order.OrderNumber == "" {
		t.Error("order number missing")
	}

	var items []models.OrderItem
	config.DB.Where("order_id = ?", order.ID).Find(&items)
	if len(items) != 1 || items[0].UnitPrice != 55000 || items[0].Name != "House Lager" {
		t.Errorf("line snapshot wrong: %+v", items)
	}
}

func setStatus(t *testing.T, env *testEnv, orderID uint, status models.OrderStatus) (int, map[string]interface{}) {
	t.Helper()
	return env.do(t, http.MethodPut, "/api/orders/"+itoa(orderID)+"/status", env.adminToken,
		map[string]interface{}{"status": status})
}

func TestTransitionToPaidStampsPayment(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	code, resp := setStatus(t, env, order.ID, models.StatusPaid)
	if code != http.StatusOK {
		t.Fatalf("status %d, resp %v", code, resp)
	}

	var updated models.Order
	config.DB.First(&updated, order.ID)
	if updated.Status != models.StatusPaid {
		t.Errorf("status = %s, want paid", updated.Status)
	}
	if updated.PaymentStatus != models.PaymentPaid {
		t.Errorf("payment_status = %s, want paid", updated.PaymentStatus)
	}
	if updated.PaidAt == nil {
		t.Error("paid_at not stamped")
	}
}

func TestOtherTransitionsLeavePaymentAlone(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	code, resp := setStatus(t, env, order.ID, models.StatusCancelled)
	if code != http.StatusOK {
		t.Fatalf("status %d, resp %v", code, resp)
	}

	var updated models.Order
	config.DB.First(&updated, order.ID)
	if updated.PaymentStatus != models.PaymentUnpaid || updated.PaidAt != nil {
		t.Errorf("cancel must not touch payment: %s / %v", updated.PaymentStatus, updated.PaidAt)
	}
}

func TestIllegalTransitionRejected(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	code, resp := setStatus(t, env, order.ID, models.StatusReady)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("pending → ready should be 422, got %d (%v)", code, resp)
	}
	if resp["valid_next_states"] == nil {
		t.Error("response should list valid next states")
	}

	var unchanged models.Order
	config.DB.First(&unchanged, order.ID)
	if unchanged.Status != models.StatusPending {
		t.Errorf("status mutated to %s on a rejected transition", unchanged.Status)
	}
}

func TestTerminalOrderAcceptsNothing(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	if code, _ := setStatus(t, env, order.ID, models.StatusCancelled); code != http.StatusOK {
		t.Fatal("cancel failed")
	}
	if code, _ := setStatus(t, env, order.ID, models.StatusPending); code != http.StatusUnprocessableEntity {
		t.Error("cancelled order must reject further transitions")
	}
}

func TestTransitionsRecordHistory(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	setStatus(t, env, order.ID, models.StatusPaid)
	setStatus(t, env, order.ID, models.StatusPreparing)

	var history []models.OrderStatusHistory
	config.DB.Where("order_id = ?", order.ID).Order("id asc").Find(&history)
	// creation entry plus two transitions
	if len(history) != 3 {
		t.Fatalf("history rows = %d, want 3", len(history))
	}
	last := history[2]
	if last.FromStatus != models.StatusPaid || last.ToStatus != models.StatusPreparing {
		t.Errorf("last history row %s → %s", last.FromStatus, last.ToStatus)
	}
	if last.ChangedBy != env.admin.ID {
		t.Errorf("changed_by = %d, want %d", last.ChangedBy, env.admin.ID)
	}
}

func TestApplyOrderDiscount(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID) // total 110000

	status, resp := env.do(t, http.MethodPut, "/api/orders/"+itoa(order.ID)+"/discount",
		env.adminToken, map[string]interface{}{"percent": 10})
	if status != http.StatusOK {
		t.Fatalf("status %d, resp %v", status, resp)
	}

	var updated models.Order
	config.DB.First(&updated, order.ID)
	if updated.DiscountAmount != 10000 {
		t.Errorf("discount_amount = %d, want 10000", updated.DiscountAmount)
	}
	if updated.TotalAmount != 100000 {
		t.Errorf("total_amount = %d, want 100000", updated.TotalAmount)
	}
}

func TestApplyOrderDiscountTwiceRefused(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	env.do(t, http.MethodPut, "/api/orders/"+itoa(order.ID)+"/discount",
		env.adminToken, map[string]interface{}{"percent": 10})
	status, _ := env.do(t, http.MethodPut, "/api/orders/"+itoa(order.ID)+"/discount",
		env.adminToken, map[string]interface{}{"percent": 10})
	if status != http.StatusConflict {
		t.Errorf("second apply: status %d, want 409", status)
	}

	var updated models.Order
	config.DB.First(&updated, order.ID)
	if updated.TotalAmount != 100000 {
		t.Errorf("total compounded to %d", updated.TotalAmount)
	}
}

func TestApplyDiscountFromUserDiscount(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	profile := models.Profile{Email: "regular@example.com"}
	config.DB.Create(&profile)
	discount := models.UserDiscount{
		ProfileID: profile.ID, OrganizationID: org.ID, Percent: 10, IsActive: true,
	}
	config.DB.Create(&discount)

	status, resp := env.do(t, http.MethodPut, "/api/orders/"+itoa(order.ID)+"/discount",
		env.adminToken, map[string]interface{}{"discount_id": discount.ID})
	if status != http.StatusOK {
		t.Fatalf("status %d, resp %v", status, resp)
	}
	var updated models.Order
	config.DB.First(&updated, order.ID)
	if updated.TotalAmount != 100000 {
		t.Errorf("total = %d, want 100000", updated.TotalAmount)
	}
}

func TestInactiveUserDiscountRefused(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	profile := models.Profile{Email: "lapsed@example.com"}
	config.DB.Create(&profile)
	discount := models.UserDiscount{
		ProfileID: profile.ID, OrganizationID: org.ID, Percent: 10, IsActive: false,
	}
	config.DB.Create(&discount)

	status, _ := env.do(t, http.MethodPut, "/api/orders/"+itoa(order.ID)+"/discount",
		env.adminToken, map[string]interface{}{"discount_id": discount.ID})
	if status != http.StatusBadRequest {
		t.Errorf("status %d, want 400", status)
	}
}

func TestAdminCannotCreateOrDeleteOrders(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	order := seedOrder(t, env, org.ID)

	status, _ := env.do(t, http.MethodPost, "/api/orders", env.adminToken,
		map[string]interface{}{"organization_id": org.ID, "items": []map[string]interface{}{}})
	if status != http.StatusForbidden {
		t.Errorf("admin create order: status %d, want 403", status)
	}
	status, _ = env.do(t, http.MethodDelete, "/api/orders/"+itoa(order.ID), env.adminToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("admin delete order: status %d, want 403", status)
	}
}

func TestOrderListSummaryAndFilter(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	a := seedOrder(t, env, org.ID)
	seedOrder(t, env, org.ID)
	setStatus(t, env, a.ID, models.StatusPaid)

	status, resp := env.do(t, http.MethodGet, "/api/orders?status=paid", env.adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	if resp["count"].(float64) != 1 {
		t.Errorf("count = %v, want 1", resp["count"])
	}
	summary := resp["order_summary"].(map[string]interface{})
	if summary["paid"].(float64) != 1 {
		t.Errorf("summary = %v", summary)
	}
}
