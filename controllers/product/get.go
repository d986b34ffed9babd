package productcontroller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

// GetProductByID returns a single product with its category and extra images.
// URL param: /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		// AdditionalImages is stored as a JSON array string; a corrupt value
		// degrades to an empty list.
		additionalImages := []string{}
		if product.AdditionalImages != "" {
			if err := json.Unmarshal([]byte(product.AdditionalImages), &additionalImages); err != nil {
				additionalImages = []string{}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"id":                product.ID,
			"name":              product.Name,
			"name_ar":           product.NameAr,
			"description":       product.Description,
			"description_ar":    product.DescriptionAr,
			"price":             product.Price,
			"category_id":       product.CategoryID,
			"category":          product.Category,
			"image_url":         product.ImageURL,
			"additional_images": additionalImages,
			"in_stock":          product.InStock,
			"featured":          product.Featured,
		})
	}
}

// GetRelatedProducts returns up to 4 in-stock products from the same category.
// URL param: /api/products/:id/related
func GetRelatedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var related []models.Product
		if err := db.
			Where("category_id = ? AND id <> ? AND in_stock = ?", product.CategoryID, product.ID, true).
			Limit(4).
			Find(&related).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related products"})
			return
		}

		c.JSON(http.StatusOK, related)
	}
}

// GetFeaturedProducts returns up to 8 featured in-stock products for the storefront.
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.
			Where("featured = ? AND in_stock = ?", true, true).
			Limit(8).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
