package routes

import (
	"taproom-admin-api/authz"
	"taproom-admin-api/handlers"
	"taproom-admin-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)

		// Permission matrix + order lifecycle (great for docs/Postman)
		public.GET("/capabilities", handlers.GetCapabilities)
	}

	// ── Authenticated routes ───────────────────────────────────────
	// Every route below is additionally gated by the capability set the
	// auth middleware computes for the caller's resolved role.
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())

	auth.GET("/auth/session", handlers.Session)
	auth.POST("/auth/logout", handlers.Logout)

	can := middleware.CapabilityRequired

	orgs := auth.Group("/organizations")
	{
		orgs.GET("", can(authz.ActionRead, authz.ResourceOrganizations), handlers.ListOrganizations)
		orgs.GET("/:id", can(authz.ActionRead, authz.ResourceOrganizations), handlers.GetOrganization)
		orgs.POST("", can(authz.ActionCreate, authz.ResourceOrganizations), handlers.CreateOrganization)
		orgs.PUT("/:id", can(authz.ActionUpdate, authz.ResourceOrganizations), handlers.UpdateOrganization)
		orgs.DELETE("/:id", can(authz.ActionDelete, authz.ResourceOrganizations), handlers.DeleteOrganization)
	}

	categories := auth.Group("/categories")
	{
		categories.GET("", can(authz.ActionRead, authz.ResourceCategories), handlers.ListCategories)
		categories.GET("/:id", can(authz.ActionRead, authz.ResourceCategories), handlers.GetCategory)
		categories.POST("", can(authz.ActionCreate, authz.ResourceCategories), handlers.CreateCategory)
		categories.PUT("/:id", can(authz.ActionUpdate, authz.ResourceCategories), handlers.UpdateCategory)
		categories.DELETE("/:id", can(authz.ActionDelete, authz.ResourceCategories), handlers.DeleteCategory)
	}

	items := auth.Group("/menu-items")
	{
		items.GET("", can(authz.ActionRead, authz.ResourceMenuItems), handlers.ListMenuItems)
		items.GET("/:id", can(authz.ActionRead, authz.ResourceMenuItems), handlers.GetMenuItem)
		items.POST("", can(authz.ActionCreate, authz.ResourceMenuItems), handlers.CreateMenuItem)
		items.PUT("/:id", can(authz.ActionUpdate, authz.ResourceMenuItems), handlers.UpdateMenuItem)
		items.DELETE("/:id", can(authz.ActionDelete, authz.ResourceMenuItems), handlers.DeleteMenuItem)
	}

	orders := auth.Group("/orders")
	{
		orders.GET("", can(authz.ActionRead, authz.ResourceOrders), handlers.ListOrders)
		orders.GET("/export", can(authz.ActionRead, authz.ResourceOrders), handlers.ExportOrders)
		orders.GET("/:id", can(authz.ActionRead, authz.ResourceOrders), handlers.GetOrder)
		orders.POST("", can(authz.ActionCreate, authz.ResourceOrders), handlers.CreateOrder)
		orders.PUT("/:id/status", can(authz.ActionUpdate, authz.ResourceOrders), handlers.UpdateOrderStatus)
		orders.PUT("/:id/discount", can(authz.ActionUpdate, authz.ResourceOrders), handlers.ApplyOrderDiscount)
		orders.DELETE("/:id", can(authz.ActionDelete, authz.ResourceOrders), handlers.DeleteOrder)
	}

	discounts := auth.Group("/discounts")
	{
		discounts.GET("", can(authz.ActionRead, authz.ResourceDiscounts), handlers.ListDiscounts)
		discounts.GET("/:id", can(authz.ActionRead, authz.ResourceDiscounts), handlers.GetDiscount)
		discounts.POST("", can(authz.ActionCreate, authz.ResourceDiscounts), handlers.CreateDiscount)
		discounts.PUT("/:id", can(authz.ActionUpdate, authz.ResourceDiscounts), handlers.UpdateDiscount)
		discounts.DELETE("/:id", can(authz.ActionDelete, authz.ResourceDiscounts), handlers.DeleteDiscount)
	}

	auth.GET("/profiles", can(authz.ActionRead, authz.ResourceProfiles), handlers.ListProfiles)

	adminUsers := auth.Group("/admin-users")
	{
		adminUsers.GET("", can(authz.ActionRead, authz.ResourceAdminUsers), handlers.ListAdminUsers)
		adminUsers.POST("", can(authz.ActionCreate, authz.ResourceAdminUsers), handlers.CreateAdminUser)
		adminUsers.PUT("/:id", can(authz.ActionUpdate, authz.ResourceAdminUsers), handlers.UpdateAdminUser)
		adminUsers.DELETE("/:id", can(authz.ActionDelete, authz.ResourceAdminUsers), handlers.DeleteAdminUser)
	}

	// Uploads feed menu item images, so they share that capability
	uploads := auth.Group("/uploads")
	{
		uploads.POST("", can(authz.ActionUpdate, authz.ResourceMenuItems), handlers.UploadFile)
		uploads.DELETE("", can(authz.ActionUpdate, authz.ResourceMenuItems), handlers.DeleteFile)
	}
}
