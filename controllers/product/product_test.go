package productcontroller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	productcontroller "github.com/Rahim252004/decluxdz-store/controllers/product"
	"github.com/Rahim252004/decluxdz-store/models"
)

func setupProductTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	err = testDB.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/products", productcontroller.GetProducts(testDB))
		api.GET("/products/featured", productcontroller.GetFeaturedProducts(testDB))
		api.GET("/products/:id", productcontroller.GetProductByID(testDB))
		api.GET("/products/:id/related", productcontroller.GetRelatedProducts(testDB))
		api.GET("/categories", productcontroller.GetAllCategories(testDB))

		api.POST("/admin/products", productcontroller.CreateProduct(testDB))
		api.PUT("/admin/products/:id", productcontroller.UpdateProduct(testDB))
		api.DELETE("/admin/products/:id", productcontroller.DeleteProduct(testDB))
		api.POST("/admin/categories", productcontroller.CreateCategory(testDB))
		api.DELETE("/admin/categories/:id", productcontroller.DeleteCategory(testDB))
	}

	return r, testDB
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func seedCategory(t *testing.T, db *gorm.DB, name, nameAr string) models.Category {
	category := models.Category{Name: name, NameAr: nameAr}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name, nameAr string, price float64, inStock bool) models.Product {
	product := models.Product{
		Name:       name,
		NameAr:     nameAr,
		Price:      price,
		CategoryID: categoryID,
		InStock:    inStock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func TestPublicListing(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	ceilings := seedCategory(t, testDB, "Ceiling Decorations", "ديكور أسقف")
	walls := seedCategory(t, testDB, "Wall Designs", "تصاميم جدران")

	seedProduct(t, testDB, ceilings.ID, "Ceiling rose", "وردة سقف", 1000, true)
	seedProduct(t, testDB, ceilings.ID, "Plaster cornice", "كورنيش جبس", 700, true)
	seedProduct(t, testDB, walls.ID, "Wall panel", "لوحة جدارية", 1500, true)
	seedProduct(t, testDB, walls.ID, "Hidden panel", "لوحة مخفية", 900, false)

	t.Run("Lists only in-stock products", func(t *testing.T) {
		recorder := performJSON(router, http.MethodGet, "/api/products", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Products    []map[string]interface{} `json:"products"`
			Total       int                      `json:"total"`
			Pages       int                      `json:"pages"`
			CurrentPage int                      `json:"current_page"`
			HasNext     bool                     `json:"has_next"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, 3, response.Total)
		assert.Len(t, response.Products, 3)
		assert.Equal(t, 1, response.CurrentPage)
		assert.False(t, response.HasNext)
	})

	t.Run("Filters by category", func(t *testing.T) {
		recorder := performJSON(router, http.MethodGet, fmt.Sprintf("/api/products?category=%d", walls.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Total int `json:"total"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, 1, response.Total)
	})

	t.Run("Searches both languages", func(t *testing.T) {
		recorder := performJSON(router, http.MethodGet, "/api/products?search=rose", nil)
		var response struct {
			Total int `json:"total"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, 1, response.Total)

		recorder = performJSON(router, http.MethodGet, "/api/products?search=%D9%83%D9%88%D8%B1%D9%86%D9%8A%D8%B4", nil)
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, 1, response.Total)
	})

	t.Run("Paginates with a fixed page size", func(t *testing.T) {
		recorder := performJSON(router, http.MethodGet, "/api/products?per_page=2&page=1", nil)
		var response struct {
			Products []map[string]interface{} `json:"products"`
			Pages    int                      `json:"pages"`
			HasNext  bool                     `json:"has_next"`
			HasPrev  bool                     `json:"has_prev"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Len(t, response.Products, 2)
		assert.Equal(t, 2, response.Pages)
		assert.True(t, response.HasNext)
		assert.False(t, response.HasPrev)
	})
}

func TestProductDetailAndRelated(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	category := seedCategory(t, testDB, "Columns", "أعمدة")
	product := seedProduct(t, testDB, category.ID, "Roman column", "عمود روماني", 5000, true)
	seedProduct(t, testDB, category.ID, "Greek column", "عمود يوناني", 4500, true)
	seedProduct(t, testDB, category.ID, "Broken column", "عمود مكسور", 100, false)

	t.Run("Detail returns the product", func(t *testing.T) {
		recorder := performJSON(router, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]interface{}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Roman column", response["name"])
		assert.Equal(t, 5000.0, response["price"])
	})

	t.Run("Unknown id is a 404", func(t *testing.T) {
		recorder := performJSON(router, http.MethodGet, "/api/products/99999", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Related excludes the product itself and out-of-stock items", func(t *testing.T) {
		recorder := performJSON(router, http.MethodGet, fmt.Sprintf("/api/products/%d/related", product.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var related []models.Product
		json.Unmarshal(recorder.Body.Bytes(), &related)
		assert.Len(t, related, 1)
		assert.Equal(t, "Greek column", related[0].Name)
	})
}

func TestDeleteProduct(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	category := seedCategory(t, testDB, "Frames", "إطارات")
	ordered := seedProduct(t, testDB, category.ID, "Ordered frame", "إطار مباع", 600, true)
	unsold := seedProduct(t, testDB, category.ID, "Unsold frame", "إطار جديد", 400, true)

	customer := models.Customer{Name: "Sara", Phone: "0770123456"}
	assert.NoError(t, testDB.Create(&customer).Error)
	order := models.Order{
		OrderNumber: "TEST1234",
		CustomerID:  customer.ID,
		TotalAmount: 600,
		Status:      models.OrderStatusPending,
		Address:     "Somewhere",
		Wilaya:      "الجزائر",
		Items: []models.OrderItem{
			{ProductID: ordered.ID, Quantity: 1, Price: 600},
		},
	}
	assert.NoError(t, testDB.Create(&order).Error)

	t.Run("Refuses to delete a product referenced by an order", func(t *testing.T) {
		recorder := performJSON(router, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", ordered.ID), nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var stillThere models.Product
		assert.NoError(t, testDB.First(&stillThere, ordered.ID).Error)
	})

	t.Run("Deletes an unreferenced product and removes it from listings", func(t *testing.T) {
		recorder := performJSON(router, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", unsold.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = performJSON(router, http.MethodGet, "/api/products", nil)
		var response struct {
			Total int `json:"total"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, 1, response.Total)
	})
}

func TestUpdateProduct(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	category := seedCategory(t, testDB, "Accessories", "إكسسوارات")
	product := seedProduct(t, testDB, category.ID, "Hook", "خطاف", 50, true)

	recorder := performJSON(router, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", product.ID),
		gin.H{"price": 75.0, "in_stock": false})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var updated models.Product
	assert.NoError(t, testDB.First(&updated, product.ID).Error)
	assert.Equal(t, 75.0, updated.Price)
	assert.False(t, updated.InStock)
	assert.Equal(t, "Hook", updated.Name) // untouched fields stay

	t.Run("Negative price is rejected", func(t *testing.T) {
		recorder := performJSON(router, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", product.ID),
			gin.H{"price": -10.0})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func postProductForm(t *testing.T, router *gin.Engine, fields map[string]string, imageName string, imageSize int) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(bytes.Repeat([]byte{0}, imageSize)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateProductImageUpload(t *testing.T) {
	router, testDB := setupProductTestRouter(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	category := seedCategory(t, testDB, "Medallions", "ميداليات")
	fields := map[string]string{
		"name":        "Plaster medallion",
		"name_ar":     "ميدالية جبس",
		"price":       "1200",
		"category_id": fmt.Sprintf("%d", category.ID),
	}

	t.Run("Rejects an image over 16 MB", func(t *testing.T) {
		recorder := postProductForm(t, router, fields, "huge.jpg", 17<<20)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var count int64
		testDB.Model(&models.Product{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Accepts an image under the limit", func(t *testing.T) {
		recorder := postProductForm(t, router, fields, "small.jpg", 1<<10)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var created models.Product
		assert.NoError(t, testDB.Where("name = ?", "Plaster medallion").First(&created).Error)
		assert.Contains(t, created.ImageURL, "/uploads/small_")
	})
}

func TestCategoryManagement(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	t.Run("Creates a category", func(t *testing.T) {
		recorder := performJSON(router, http.MethodPost, "/api/admin/categories",
			gin.H{"name": "Cornices", "name_ar": "كورنيش"})
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("Refuses to create without both names", func(t *testing.T) {
		recorder := performJSON(router, http.MethodPost, "/api/admin/categories", gin.H{"name": "Nameless"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Refuses to delete a category with products", func(t *testing.T) {
		var category models.Category
		assert.NoError(t, testDB.Where("name = ?", "Cornices").First(&category).Error)
		seedProduct(t, testDB, category.ID, "Cornice", "كورنيش", 300, true)

		recorder := performJSON(router, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", category.ID), nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
