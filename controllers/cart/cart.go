package cartControllers

import (
	"encoding/gob"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rahim252004/decluxdz-store/models"
)

// The cart lives in the visitor's session as product-id → quantity. Entries
// pointing at deleted or out-of-stock products stay in the map but are
// excluded whenever the cart is priced.
const cartSessionKey = "cart"

func init() {
	gob.Register(map[string]int{})
}

type AddToCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CartItemView struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	NameAr    string  `json:"name_ar"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
	ImageURL  string  `json:"image_url"`
}

// CurrentCart returns the session cart, never nil.
func CurrentCart(c *gin.Context) map[string]int {
	sess := sessions.Default(c)
	if cart, ok := sess.Get(cartSessionKey).(map[string]int); ok {
		return cart
	}
	return map[string]int{}
}

// SaveCart writes the cart back to the session.
func SaveCart(c *gin.Context, cart map[string]int) error {
	sess := sessions.Default(c)
	sess.Set(cartSessionKey, cart)
	return sess.Save()
}

// ClearCart empties the session cart. Called only on successful checkout.
func ClearCart(c *gin.Context) error {
	return SaveCart(c, map[string]int{})
}

// ResolveCart prices the cart against the live product table. Unavailable
// products are silently skipped; the stored cart state is left untouched.
func ResolveCart(db *gorm.DB, cart map[string]int) ([]CartItemView, float64) {
	items := make([]CartItemView, 0, len(cart))
	var total float64

	for productID, quantity := range cart {
		id, err := strconv.Atoi(productID)
		if err != nil {
			continue
		}
		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			continue
		}
		if !product.InStock {
			continue
		}

		itemTotal := product.Price * float64(quantity)
		items = append(items, CartItemView{
			ProductID: product.ID,
			Name:      product.Name,
			NameAr:    product.NameAr,
			Price:     product.Price,
			Quantity:  quantity,
			Total:     itemTotal,
			ImageURL:  product.ImageURL,
		})
		total += itemTotal
	}

	return items, total
}

func cartCount(cart map[string]int) int {
	count := 0
	for _, quantity := range cart {
		count += quantity
	}
	return count
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, total := ResolveCart(db, CurrentCart(c))
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
	}
}

// POST /api/cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID required"})
			return
		}
		if input.Quantity <= 0 {
			input.Quantity = 1
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil || !product.InStock {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not available"})
			return
		}

		cart := CurrentCart(c)
		key := strconv.Itoa(int(input.ProductID))
		cart[key] += input.Quantity

		if err := SaveCart(c, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product added to cart", "cart_count": cartCount(cart)})
	}
}

// PUT /api/cart
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID required"})
			return
		}

		cart := CurrentCart(c)
		key := strconv.Itoa(int(input.ProductID))
		if _, exists := cart[key]; exists {
			if input.Quantity > 0 {
				cart[key] = input.Quantity
			} else {
				delete(cart, key)
			}
			if err := SaveCart(c, cart); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart_count": cartCount(cart)})
	}
}

// DELETE /api/cart/:product_id
func RemoveFromCart(c *gin.Context) {
	productID := c.Param("product_id")

	cart := CurrentCart(c)
	if _, exists := cart[productID]; exists {
		delete(cart, productID)
		if err := SaveCart(c, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart_count": cartCount(cart)})
}
