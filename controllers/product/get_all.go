package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

// GetProducts is the public catalog listing: in-stock products only, with
// optional category filter, bilingual substring search and pagination.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))
		if perPage < 1 {
			perPage = 12
		}
		search := c.Query("search")
		categoryID := c.Query("category")

		query := db.Model(&models.Product{}).Where("in_stock = ?", true)

		if categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			query = query.Where("category_id = ?", uint(cid))
		}

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name LIKE ? OR name_ar LIKE ?", likePattern, likePattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		var products []models.Product
		if err := query.
			Order("id").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		rows := make([]gin.H, 0, len(products))
		for _, p := range products {
			rows = append(rows, gin.H{
				"id":             p.ID,
				"name":           p.Name,
				"name_ar":        p.NameAr,
				"description":    p.Description,
				"description_ar": p.DescriptionAr,
				"price":          p.Price,
				"category_id":    p.CategoryID,
				"image_url":      p.ImageURL,
				"featured":       p.Featured,
			})
		}

		pages := int((total + int64(perPage) - 1) / int64(perPage))
		c.JSON(http.StatusOK, gin.H{
			"products":     rows,
			"total":        total,
			"pages":        pages,
			"current_page": page,
			"has_next":     page < pages,
			"has_prev":     page > 1,
		})
	}
}

// AdminGetProducts lists the whole catalog for the admin panel, including
// out-of-stock products, newest first.
func AdminGetProducts(db *gorm.DB) gin.HandlerFunc {
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

		query := db.Model(&models.Product{})
		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name LIKE ? OR name_ar LIKE ?", likePattern, likePattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		var products []models.Product
		if err := query.
			Preload("Category").
			Order("created_at DESC").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		pages := int((total + int64(perPage) - 1) / int64(perPage))
		c.JSON(http.StatusOK, gin.H{
			"products":     products,
			"total":        total,
			"pages":        pages,
			"current_page": page,
		})
	}
}
