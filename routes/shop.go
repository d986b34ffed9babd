package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Rahim252004/decluxdz-store/controllers/cart"
	contactControllers "github.com/Rahim252004/decluxdz-store/controllers/contact"
	orderControllers "github.com/Rahim252004/decluxdz-store/controllers/order"
	productcontroller "github.com/Rahim252004/decluxdz-store/controllers/product"
)

// SetupShopRoutes registers all public “/api/*” endpoints.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		// ──────────────── Browse Products ────────────────
		api.GET("/products", productcontroller.GetProducts(db))
		api.GET("/products/featured", productcontroller.GetFeaturedProducts(db))
		api.GET("/products/:id", productcontroller.GetProductByID(db))
		api.GET("/products/:id/related", productcontroller.GetRelatedProducts(db))
		api.GET("/categories", productcontroller.GetAllCategories(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := api.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(db))
			cartGroup.POST("", cartControllers.AddToCart(db))
			cartGroup.PUT("", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/:product_id", cartControllers.RemoveFromCart)
		}

		// ──────────────── Checkout & Tracking ────────────────
		api.POST("/checkout", orderControllers.CheckoutHandler(db))
		api.GET("/orders/:order_number", orderControllers.TrackOrderHandler(db))

		// ──────────────── Contact Form ────────────────
		api.POST("/contact", contactControllers.SubmitContact(db))
	}
}
