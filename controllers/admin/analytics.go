package adminController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

type topProductRow struct {
	NameAr       string  `json:"name"`
	TotalSold    int     `json:"sold"`
	TotalRevenue float64 `json:"revenue"`
}

type provinceRow struct {
	Wilaya       string  `json:"province"`
	OrderCount   int     `json:"order_count"`
	TotalRevenue float64 `json:"revenue"`
}

type monthRow struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// GET /api/admin/analytics
//
// Everything here is computed fresh per request; the data volume of a single
// store does not justify caching.
func GetAnalytics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalProducts, totalOrders, totalCustomers int64
		db.Model(&models.Product{}).Count(&totalProducts)
		db.Model(&models.Order{}).Count(&totalOrders)
		db.Model(&models.Customer{}).Count(&totalCustomers)

		var totalRevenue float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		// Top 10 products by quantity sold
		var topProducts []topProductRow
		if err := db.Model(&models.OrderItem{}).
			Select("products.name_ar AS name_ar, SUM(order_items.quantity) AS total_sold, SUM(order_items.quantity * order_items.price) AS total_revenue").
			Joins("JOIN products ON products.id = order_items.product_id").
			Group("products.id, products.name_ar").
			Order("total_sold DESC").
			Limit(10).
			Scan(&topProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute top products"})
			return
		}

		// Revenue and order count per wilaya
		var salesByProvince []provinceRow
		if err := db.Model(&models.Order{}).
			Select("wilaya, COUNT(id) AS order_count, SUM(total_amount) AS total_revenue").
			Group("wilaya").
			Order("total_revenue DESC").
			Scan(&salesByProvince).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sales by province"})
			return
		}

		// Revenue bucketed by calendar month, last 6 months oldest first
		now := time.Now().UTC()
		currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthlyRevenue := make([]monthRow, 0, 6)
		for i := 5; i >= 0; i-- {
			start := currentMonth.AddDate(0, -i, 0)
			end := start.AddDate(0, 1, 0)

			var revenue float64
			if err := db.Model(&models.Order{}).
				Where("created_at >= ? AND created_at < ?", start, end).
				Select("COALESCE(SUM(total_amount), 0)").
				Scan(&revenue).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute monthly revenue"})
				return
			}
			monthlyRevenue = append(monthlyRevenue, monthRow{
				Month:   start.Format("2006-01"),
				Revenue: revenue,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"total_products":    totalProducts,
			"total_orders":      totalOrders,
			"total_customers":   totalCustomers,
			"total_revenue":     totalRevenue,
			"top_products":      topProducts,
			"sales_by_province": salesByProvince,
			"monthly_revenue":   monthlyRevenue,
		})
	}
}
