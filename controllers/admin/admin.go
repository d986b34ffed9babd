package adminController

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/admin/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
			return
		}

		var admin models.Admin
		if err := db.Where("username = ?", req.Username).First(&admin).Error; err != nil || !admin.CheckPassword(req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		sess := sessions.Default(c)
		sess.Set("admin_id", admin.ID)
		if err := sess.Save(); err != nil {
			log.Println("❌ Failed to save admin session:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "admin_id": admin.ID})
	}
}

// POST /api/admin/logout
func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Delete("admin_id")
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GET /api/admin/dashboard
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalProducts, totalOrders, totalCustomers, pendingOrders int64
		db.Model(&models.Product{}).Count(&totalProducts)
		db.Model(&models.Order{}).Count(&totalOrders)
		db.Model(&models.Customer{}).Count(&totalCustomers)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)

		var recentOrders []models.Order
		if err := db.
			Preload("Customer").
			Order("created_at DESC").
			Limit(10).
			Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent orders"})
			return
		}

		thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
		var monthlyRevenue float64
		if err := db.Model(&models.Order{}).
			Where("created_at >= ?", thirtyDaysAgo).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&monthlyRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_products":  totalProducts,
			"total_orders":    totalOrders,
			"total_customers": totalCustomers,
			"pending_orders":  pendingOrders,
			"recent_orders":   recentOrders,
			"monthly_revenue": monthlyRevenue,
		})
	}
}
