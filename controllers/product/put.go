package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

type UpdateProductInput struct {
	Name          *string  `json:"name"`
	NameAr        *string  `json:"name_ar"`
	Description   *string  `json:"description"`
	DescriptionAr *string  `json:"description_ar"`
	Price         *float64 `json:"price"`
	CategoryID    *uint    `json:"category_id"`
	ImageURL      *string  `json:"image_url"`
	InStock       *bool    `json:"in_stock"`
	Featured      *bool    `json:"featured"`
}

// UpdateProduct applies a partial update; absent fields are left unchanged.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Price != nil && *input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.NameAr != nil {
			updates["name_ar"] = *input.NameAr
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.DescriptionAr != nil {
			updates["description_ar"] = *input.DescriptionAr
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.InStock != nil {
			updates["in_stock"] = *input.InStock
		}
		if input.Featured != nil {
			updates["featured"] = *input.Featured
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}
