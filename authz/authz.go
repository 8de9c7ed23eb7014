package authz

import (
	"strings"

	"taproom-admin-api/models"
)

// Action is one of the operations a dashboard user can perform on a resource
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource names a backend table addressable through the API
type Resource string

const (
	ResourceOrganizations Resource = "organizations"
	ResourceCategories    Resource = "categories"
	ResourceMenuItems     Resource = "menu_items"
	ResourcePrices        Resource = "price_per_size"
	ResourceOrders        Resource = "orders"
	ResourceOrderItems    Resource = "order_items"
	ResourceDiscounts     Resource = "user_discounts"
	ResourceAdminUsers    Resource = "admin_users"
	ResourceProfiles      Resource = "profiles"
)

var allActions = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

var allResources = []Resource{
	ResourceOrganizations,
	ResourceCategories,
	ResourceMenuItems,
	ResourcePrices,
	ResourceOrders,
	ResourceOrderItems,
	ResourceDiscounts,
	ResourceAdminUsers,
	ResourceProfiles,
}

// Rule is one permitted (action, resource) pair
type Rule struct {
	Action   Action
	Resource Resource
}

// Capabilities is the full permission set computed for one identity.
// An empty (or nil) set denies everything.
type Capabilities map[Rule]bool

// Can reports whether the (action, resource) pair is permitted
func (c Capabilities) Can(a Action, r Resource) bool {
	return c[Rule{a, r}]
}

// adminGrants is the authoritative rule table for the plain admin role.
// super_admin is not listed: it gets every action on every resource.
var adminGrants = func() []Rule {
	var rules []Rule
	// read everything
	for _, r := range allResources {
		rules = append(rules, Rule{ActionRead, r})
	}
	// create and update menu content
	for _, r := range []Resource{ResourceCategories, ResourceMenuItems, ResourcePrices} {
		rules = append(rules, Rule{ActionCreate, r}, Rule{ActionUpdate, r})
	}
	// move orders through their lifecycle
	rules = append(rules, Rule{ActionUpdate, ResourceOrders})
	return rules
}()

// Evaluate maps a resolved role to its capability set. It is a total, pure
// function: an unrecognized role yields an empty set, never an error. Callers
// that fail to resolve a role at all must pass the zero value and get deny-all.
func Evaluate(role models.AdminRole) Capabilities {
	caps := Capabilities{}
	switch role {
	case models.RoleSuperAdmin:
		for _, r := range allResources {
			for _, a := range allActions {
				caps[Rule{a, r}] = true
			}
		}
	case models.RoleAdmin:
		for _, rule := range adminGrants {
			caps[rule] = true
		}
	}
	return caps
}

// Matrix returns the rule table per role, for the capability doc endpoint
func Matrix() map[string][]string {
	m := map[string][]string{}
	for _, role := range []models.AdminRole{models.RoleAdmin, models.RoleSuperAdmin} {
		caps := Evaluate(role)
		var pairs []string
		for _, r := range allResources {
			for _, a := range allActions {
				if caps.Can(a, r) {
					pairs = append(pairs, string(a)+":"+string(r))
				}
			}
		}
		m[string(role)] = pairs
	}
	return m
}

// allowedEmails gates entry to the application before any role resolution.
// An email not on the list is treated as unauthenticated everywhere, even if
// it holds a row in admin_users or an otherwise valid session token.
var allowedEmails = map[string]bool{
	"owner@taproom.local":   true,
	"manager@taproom.local": true,
}

// SetAllowList replaces the entry allow-list (loaded from configuration).
// An empty slice keeps the built-in list.
func SetAllowList(emails []string) {
	if len(emails) == 0 {
		return
	}
	next := make(map[string]bool, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			next[e] = true
		}
	}
	allowedEmails = next
}

// EmailAllowed reports whether an email may enter the application at all
func EmailAllowed(email string) bool {
	return allowedEmails[strings.ToLower(strings.TrimSpace(email))]
}
