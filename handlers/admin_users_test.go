package handlers_test

import (
	"net/http"
	"testing"

	"taproom-admin-api/config"
	"taproom-admin-api/models"
)

func TestAdminCannotTouchRoster(t *testing.T) {
	env := newTestEnv(t)

	// plain admin may read the roster, nothing else
	if status, _ := env.do(t, http.MethodGet, "/api/admin-users", env.adminToken, nil); status != http.StatusOK {
		t.Errorf("admin read roster: status %d, want 200", status)
	}
	status, _ := env.do(t, http.MethodPost, "/api/admin-users", env.adminToken,
		map[string]interface{}{"email": "new@example.com", "password": "password123", "role": "admin"})
	if status != http.StatusForbidden {
		t.Errorf("admin create roster entry: status %d, want 403", status)
	}
}

func TestSuperAdminManagesRoster(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodPost, "/api/admin-users", env.superToken,
		map[string]interface{}{
			"email": "New.Staffer@Example.com", "password": "password123", "role": "admin",
		})
	if status != http.StatusCreated {
		t.Fatalf("status %d, resp %v", status, resp)
	}

	var user models.AdminUser
	if err := config.DB.Where("email = ?", "new.staffer@example.com").First(&user).Error; err != nil {
		t.Fatalf("email should be stored lowercased: %v", err)
	}

	status, _ = env.do(t, http.MethodPut, "/api/admin-users/"+itoa(user.ID), env.superToken,
		map[string]interface{}{"role": "super_admin"})
	if status != http.StatusOK {
		t.Errorf("promote: status %d", status)
	}
	config.DB.First(&user, user.ID)
	if user.Role != models.RoleSuperAdmin {
		t.Errorf("role = %s", user.Role)
	}

	status, _ = env.do(t, http.MethodDelete, "/api/admin-users/"+itoa(user.ID), env.superToken, nil)
	if status != http.StatusOK {
		t.Errorf("delete: status %d", status)
	}
}

func TestInvalidRoleRejected(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.do(t, http.MethodPost, "/api/admin-users", env.superToken,
		map[string]interface{}{"email": "x@example.com", "password": "password123", "role": "god"})
	if status != http.StatusBadRequest {
		t.Errorf("status %d, want 400", status)
	}
}

func TestCannotDeleteSelf(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.do(t, http.MethodDelete, "/api/admin-users/"+itoa(env.super.ID), env.superToken, nil)
	if status != http.StatusBadRequest {
		t.Errorf("status %d, want 400", status)
	}
}

func TestRoleChangeTakesEffectImmediately(t *testing.T) {
	env := newTestEnv(t)

	// remove the admin from the roster; the old token must stop working
	// because the role is re-resolved from admin_users on every request
	config.DB.Delete(&models.AdminUser{}, env.admin.ID)
	status, _ := env.do(t, http.MethodGet, "/api/orders", env.adminToken, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("removed roster row: status %d, want 401", status)
	}
}
