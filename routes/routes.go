package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry‐point that wires up the shop and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// 1️⃣ Public storefront routes (no middleware)
	SetupShopRoutes(r, db)

	// 2️⃣ Admin routes (session‐cookie‐protected)
	SetupAdminRoutes(r, db)
}
