package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

// GET /api/admin/contacts
func GetAllContacts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contacts []models.Contact
		if err := db.Order("is_read ASC, created_at DESC").Find(&contacts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
			return
		}
		c.JSON(http.StatusOK, contacts)
	}
}

// PUT /api/admin/contacts/:id/read
func MarkContactRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var contact models.Contact
		if err := db.First(&contact, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact message not found"})
			return
		}

		if err := db.Model(&contact).Update("is_read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Contact marked as read"})
	}
}
