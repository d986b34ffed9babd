package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/Rahim252004/decluxdz-store/controllers/admin"
	orderControllers "github.com/Rahim252004/decluxdz-store/controllers/order"
	productcontroller "github.com/Rahim252004/decluxdz-store/controllers/product"
	"github.com/Rahim252004/decluxdz-store/middleware"
)

// SetupAdminRoutes registers all “/api/admin/*” endpoints. Requires an active
// admin session except for login.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/api/admin/login", adminController.Login(db))

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminRequired)
	{
		adminGroup.POST("/logout", adminController.Logout)
		adminGroup.GET("/dashboard", adminController.Dashboard(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.AdminGetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:id", orderControllers.UpdateOrderStatusHandler(db))

			// websocket endpoint for real-time order updates
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}

		// ─────────── Customers & Contact Inbox ───────────
		adminGroup.GET("/customers", adminController.GetAllCustomers(db))
		adminGroup.GET("/contacts", adminController.GetAllContacts(db))
		adminGroup.PUT("/contacts/:id/read", adminController.MarkContactRead(db))

		// ─────────── Analytics ───────────
		adminGroup.GET("/analytics", adminController.GetAnalytics(db))
	}
}
