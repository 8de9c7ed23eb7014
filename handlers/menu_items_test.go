package handlers_test

import (
	"net/http"
	"testing"

	"taproom-admin-api/config"
	"taproom-admin-api/models"
)

func seedMenuItem(t *testing.T, env *testEnv, orgID uint, prices []map[string]interface{}) models.MenuItem {
	t.Helper()
	status, resp := env.do(t, http.MethodPost, "/api/menu-items", env.adminToken,
		map[string]interface{}{
			"organization_id": orgID,
			"name":            "House Lager",
			"prices":          prices,
		})
	if status != http.StatusCreated {
		t.Fatalf("seed item: status %d, resp %v", status, resp)
	}
	var item models.MenuItem
	if err := config.DB.Preload("Prices").Where("name = ?", "House Lager").
		Order("id desc").First(&item).Error; err != nil {
		t.Fatal(err)
	}
	return item
}

func currentPrices(t *testing.T, itemID uint) map[string]int64 {
	t.Helper()
	var rows []models.PricePerSize
	if err := config.DB.Where("menu_item_id = ?", itemID).Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	got := map[string]int64{}
	for _, r := range rows {
		got[r.Size] = r.Price
	}
	return got
}

func TestPriceListReplacedWholesale(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	item := seedMenuItem(t, env, org.ID, []map[string]interface{}{
		{"size": "small", "price": 30000},
		{"size": "large", "price": 45000},
	})

	status, resp := env.do(t, http.MethodPut, "/api/menu-items/"+itoa(item.ID), env.adminToken,
		map[string]interface{}{
			"prices": []map[string]interface{}{
				{"size": "small", "price": 32000},
				{"size": "pitcher", "price": 90000},
			},
		})
	if status != http.StatusOK {
		t.Fatalf("status %d, resp %v", status, resp)
	}

	got := currentPrices(t, item.ID)
	want := map[string]int64{"small": 32000, "pitcher": 90000}
	if len(got) != len(want) {
		t.Fatalf("price rows = %v, want exactly %v", got, want)
	}
	for size, price := range want {
		if got[size] != price {
			t.Errorf("size %q = %d, want %d", size, got[size], price)
		}
	}
	// large must be gone, not merged
	if _, ok := got["large"]; ok {
		t.Error("old price row survived the replace")
	}
}

func TestPriceListReplacedWithEmpty(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	item := seedMenuItem(t, env, org.ID, []map[string]interface{}{
		{"size": "small", "price": 30000},
	})

	status, resp := env.do(t, http.MethodPut, "/api/menu-items/"+itoa(item.ID), env.adminToken,
		map[string]interface{}{"prices": []map[string]interface{}{}})
	if status != http.StatusOK {
		t.Fatalf("status %d, resp %v", status, resp)
	}
	if got := currentPrices(t, item.ID); len(got) != 0 {
		t.Errorf("empty replace should remove all rows, got %v", got)
	}
}

func TestUpdateWithoutPricesLeavesThemAlone(t *testing.T) {
	env := newTestEnv(t)
	org := env.seedOrg(t, "Taproom")
	item := seedMenuItem(t, env, org.ID, []map[string]interface{}{
		{"size": "small", "price": 30000},
	})

	status, resp := env.do(t, http.MethodPut, "/api/menu-items/"+itoa(item.ID), env.adminToken,
		map[string]interface{}{"description": "Crisp and clean"})
	if status != http.StatusOK {
		t.Fatalf("status %d, resp %v", status, resp)
	}
	if got := currentPrices(t, item.ID); len(got) != 1 || got["small"] != 30000 {
		t.Errorf("prices should be untouched, got %v", got)
	}
}

func TestCreateMenuItemRejectsForeignCategory(t *testing.T) {
	env := newTestEnv(t)
	orgA := env.seedOrg(t, "Org A")
	orgB := env.seedOrg(t, "Org B")

	status, resp := env.do(t, http.MethodPost, "/api/categories", env.adminToken,
		map[string]interface{}{"organization_id": orgB.ID, "name": "Stouts"})
	if status != http.StatusCreated {
		t.Fatalf("seed category: status %d, resp %v", status, resp)
	}
	var category models.Category
	config.DB.Where("organization_id = ?", orgB.ID).First(&category)

	status, _ = env.do(t, http.MethodPost, "/api/menu-items", env.adminToken,
		map[string]interface{}{
			"organization_id": orgA.ID,
			"category_id":     category.ID,
			"name":            "Misfiled Stout",
		})
	if status != http.StatusBadRequest {
		t.Errorf("status %d, want 400", status)
	}
}

func TestCategorySlugPerOrganization(t *testing.T) {
	env := newTestEnv(t)
	orgA := env.seedOrg(t, "Org A")
	orgB := env.seedOrg(t, "Org B")

	// Same name in two organizations is fine; slugs collide only per org
	for _, orgID := range []uint{orgA.ID, orgB.ID} {
		status, resp := env.do(t, http.MethodPost, "/api/categories", env.adminToken,
			map[string]interface{}{"organization_id": orgID, "name": "Seasonal Ales"})
		if status != http.StatusCreated {
			t.Fatalf("org %d: status %d, resp %v", orgID, status, resp)
		}
	}

	var count int64
	config.DB.Model(&models.Category{}).Where("slug = ?", "seasonal-ales").Count(&count)
	if count != 2 {
		t.Errorf("expected the slug in both orgs, got %d rows", count)
	}
}
