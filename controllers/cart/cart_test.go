package cartControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartControllers "github.com/Rahim252004/decluxdz-store/controllers/cart"
	"github.com/Rahim252004/decluxdz-store/models"
)

func setupCartTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := testDB.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions("decluxsess", cookie.NewStore([]byte("test-secret"))))

	api := r.Group("/api")
	{
		api.GET("/cart", cartControllers.GetCart(testDB))
		api.POST("/cart", cartControllers.AddToCart(testDB))
		api.PUT("/cart", cartControllers.UpdateCartItem(testDB))
		api.DELETE("/cart/:product_id", cartControllers.RemoveFromCart)
	}

	return r, testDB
}

// sessionClient carries the session cookie across requests like a browser.
type sessionClient struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func (sc *sessionClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range sc.cookies {
		req.AddCookie(ck)
	}

	recorder := httptest.NewRecorder()
	sc.router.ServeHTTP(recorder, req)
	if cks := recorder.Result().Cookies(); len(cks) > 0 {
		sc.cookies = cks
	}
	return recorder
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, inStock bool) models.Product {
	var category models.Category
	if err := db.FirstOrCreate(&category, models.Category{Name: "Cornices", NameAr: "كورنيش"}).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	product := models.Product{
		Name:       name,
		NameAr:     name + " ar",
		Price:      price,
		CategoryID: category.ID,
		InStock:    inStock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func TestCartFlow(t *testing.T) {
	router, testDB := setupCartTestRouter(t)
	client := &sessionClient{router: router}

	productA := seedProduct(t, testDB, "Ceiling rose", 1000, true)
	productB := seedProduct(t, testDB, "Wall frame", 500, true)
	outOfStock := seedProduct(t, testDB, "Old column", 900, false)

	t.Run("Adding an in-stock product increments the cart", func(t *testing.T) {
		recorder := client.do(http.MethodPost, "/api/cart", gin.H{"product_id": productA.ID, "quantity": 2})
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]interface{}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, float64(2), response["cart_count"])

		// Adding again accumulates
		recorder = client.do(http.MethodPost, "/api/cart", gin.H{"product_id": productA.ID, "quantity": 1})
		assert.Equal(t, http.StatusOK, recorder.Code)
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, float64(3), response["cart_count"])
	})

	t.Run("Adding an out-of-stock product is refused", func(t *testing.T) {
		recorder := client.do(http.MethodPost, "/api/cart", gin.H{"product_id": outOfStock.ID, "quantity": 1})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Viewing the cart prices entries against the live catalog", func(t *testing.T) {
		recorder := client.do(http.MethodPost, "/api/cart", gin.H{"product_id": productB.ID})
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = client.do(http.MethodGet, "/api/cart", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Items []map[string]interface{} `json:"items"`
			Total float64                  `json:"total"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Len(t, response.Items, 2)
		assert.Equal(t, 3500.0, response.Total) // 3×1000 + 1×500
	})

	t.Run("Updating to a positive quantity replaces it, zero removes", func(t *testing.T) {
		recorder := client.do(http.MethodPut, "/api/cart", gin.H{"product_id": productA.ID, "quantity": 1})
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = client.do(http.MethodPut, "/api/cart", gin.H{"product_id": productB.ID, "quantity": 0})
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = client.do(http.MethodGet, "/api/cart", nil)
		var response struct {
			Items []map[string]interface{} `json:"items"`
			Total float64                  `json:"total"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Len(t, response.Items, 1)
		assert.Equal(t, 1000.0, response.Total)
	})

	t.Run("Removing a product empties the cart, absent id is not an error", func(t *testing.T) {
		recorder := client.do(http.MethodDelete, fmt.Sprintf("/api/cart/%d", productA.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		// Removing again is a no-op
		recorder = client.do(http.MethodDelete, fmt.Sprintf("/api/cart/%d", productA.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = client.do(http.MethodGet, "/api/cart", nil)
		var response struct {
			Items []map[string]interface{} `json:"items"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Len(t, response.Items, 0)
	})
}

func TestCartDropsUnavailableProducts(t *testing.T) {
	router, testDB := setupCartTestRouter(t)
	client := &sessionClient{router: router}

	product := seedProduct(t, testDB, "Plaster medallion", 1200, true)

	recorder := client.do(http.MethodPost, "/api/cart", gin.H{"product_id": product.ID, "quantity": 2})
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Product goes out of stock after it was added
	assert.NoError(t, testDB.Model(&product).Update("in_stock", false).Error)

	recorder = client.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Items []map[string]interface{} `json:"items"`
		Total float64                  `json:"total"`
	}
	json.Unmarshal(recorder.Body.Bytes(), &response)
	assert.Len(t, response.Items, 0)
	assert.Equal(t, 0.0, response.Total)
}
