package orderControllers

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Rahim252004/decluxdz-store/controllers/cart"
	"github.com/Rahim252004/decluxdz-store/models"
)

// -------- Request Structs --------

type CheckoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Wilaya  string `json:"wilaya"`
	Notes   string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus. Exact match only, no case folding.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch status {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusInDelivery):
		return models.OrderStatusInDelivery, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	default:
		return "", errors.New("invalid order status")
	}
}

const orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateOrderNumber returns the 8-character tracking handle given to the
// customer. Uniqueness is probabilistic; the unique column turns the
// astronomically unlikely collision into a rolled-back transaction.
func generateOrderNumber() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = orderNumberCharset[rand.Intn(len(orderNumberCharset))]
	}
	return string(b)
}

// -------- Handlers --------

// POST /api/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		// Field-specific validation errors, one per missing field
		required := []struct{ name, value string }{
			{"name", req.Name},
			{"phone", req.Phone},
			{"address", req.Address},
			{"wilaya", req.Wilaya},
		}
		for _, field := range required {
			if strings.TrimSpace(field.value) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": field.name + " is required"})
				return
			}
		}
		if !models.IsValidWilaya(req.Wilaya) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wilaya"})
			return
		}

		cart := cartControllers.CurrentCart(c)
		if len(cart) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		// Revalidate the cart against the live catalog; unavailable products
		// are dropped from the order, not reported.
		cartItems, total := cartControllers.ResolveCart(db, cart)
		if len(cartItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No available products in cart"})
			return
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price, // frozen at purchase time
			})
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			// Customers are deduplicated by phone; an existing record is
			// reused as-is.
			var customer models.Customer
			if err := tx.Where("phone = ?", req.Phone).First(&customer).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				customer = models.Customer{
					Name:  req.Name,
					Phone: req.Phone,
					Email: req.Email,
				}
				if err := tx.Create(&customer).Error; err != nil {
					return err
				}
			}

			order = models.Order{
				OrderNumber: generateOrderNumber(),
				CustomerID:  customer.ID,
				TotalAmount: total,
				Status:      models.OrderStatusPending,
				Address:     req.Address,
				Wilaya:      req.Wilaya,
				Notes:       req.Notes,
				Items:       orderItems,
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			// Cart is left untouched so the customer can retry
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		if err := cartControllers.ClearCart(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusOK, gin.H{
			"message":      "Order created successfully",
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
		})
	}
}

// GET /api/orders/:order_number
func TrackOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("order_number")

		var order models.Order
		if err := db.
			Preload("Items.Product").
			Where("order_number = ?", orderNumber).
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		items := make([]gin.H, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, gin.H{
				"product_name": item.Product.NameAr,
				"quantity":     item.Quantity,
				"price":        item.Price,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
			"address":      order.Address,
			"wilaya":       order.Wilaya,
			"created_at":   order.CreatedAt,
			"items":        items,
		})
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
		if perPage < 1 {
			perPage = 20
		}
		statusFilter := c.Query("status")

		query := db.Model(&models.Order{})
		if statusFilter != "" {
			query = query.Where("status = ?", statusFilter)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		var orders []models.Order
		if err := query.
			Preload("Customer").
			Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		rows := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			rows = append(rows, gin.H{
				"id":             o.ID,
				"order_number":   o.OrderNumber,
				"customer_name":  o.Customer.Name,
				"customer_phone": o.Customer.Phone,
				"total_amount":   o.TotalAmount,
				"status":         o.Status,
				"address":        o.Address,
				"wilaya":         o.Wilaya,
				"created_at":     o.CreatedAt,
				"item_count":     len(o.Items),
			})
		}

		pages := int((total + int64(perPage) - 1) / int64(perPage))
		c.JSON(http.StatusOK, gin.H{
			"orders":       rows,
			"total":        total,
			"pages":        pages,
			"current_page": page,
		})
	}
}

// PUT /api/admin/orders/:id
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}

		var order models.Order
		if err := db.First(&order, orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
