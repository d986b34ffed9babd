package productcontroller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

// MaxMultipartMemory only controls buffering; oversize files still have to be
// rejected explicitly.
const maxImageSize = 16 << 20

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// saveUploadedImage stores the file under the upload directory with a unique
// filename and returns its public URL.
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", fmt.Errorf("file exceeds the %d MB limit", maxImageSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("file type %q not allowed", ext)
	}

	dir := uploadDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	base = strings.ReplaceAll(base, " ", "_")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	filename := fmt.Sprintf("%s_%s%s", base, suffix, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}

// CreateProduct creates a new product from a multipart form with an optional image.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		nameAr := c.PostForm("name_ar")
		priceStr := c.PostForm("price")
		categoryIDStr := c.PostForm("category_id")
		for field, value := range map[string]string{
			"name":        name,
			"name_ar":     nameAr,
			"price":       priceStr,
			"category_id": categoryIDStr,
		} {
			if value == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": field + " is required"})
				return
			}
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		var category models.Category
		if err := db.First(&category, uint(categoryID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		// Optional flags; products default to in stock, not featured
		inStock := true
		if v := c.PostForm("in_stock"); v != "" {
			inStock = v == "true" || v == "1" || v == "on"
		}
		featured := false
		if v := c.PostForm("featured"); v != "" {
			featured = v == "true" || v == "1" || v == "on"
		}

		// Image upload
		var imageURL string
		if file, err := c.FormFile("image"); err == nil {
			imageURL, err = saveUploadedImage(c, file)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
		}

		product := models.Product{
			Name:          name,
			NameAr:        nameAr,
			Description:   c.PostForm("description"),
			DescriptionAr: c.PostForm("description_ar"),
			Price:         price,
			CategoryID:    category.ID,
			ImageURL:      imageURL,
			InStock:       inStock,
			Featured:      featured,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
