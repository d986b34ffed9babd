package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

// GET /api/admin/customers
func GetAllCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
		if perPage < 1 {
			perPage = 20
		}
		search := c.Query("search")

		query := db.Model(&models.Customer{})
		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name LIKE ? OR phone LIKE ?", likePattern, likePattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}

		var customers []models.Customer
		if err := query.
			Preload("Orders").
			Order("created_at DESC").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}

		rows := make([]gin.H, 0, len(customers))
		for _, cust := range customers {
			var totalSpent float64
			for _, order := range cust.Orders {
				totalSpent += order.TotalAmount
			}
			rows = append(rows, gin.H{
				"id":          cust.ID,
				"name":        cust.Name,
				"phone":       cust.Phone,
				"email":       cust.Email,
				"created_at":  cust.CreatedAt,
				"order_count": len(cust.Orders),
				"total_spent": totalSpent,
			})
		}

		pages := int((total + int64(perPage) - 1) / int64(perPage))
		c.JSON(http.StatusOK, gin.H{
			"customers":    rows,
			"total":        total,
			"pages":        pages,
			"current_page": page,
		})
	}
}
