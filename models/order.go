package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"     // Order placed, awaiting confirmation
	OrderStatusInDelivery OrderStatus = "in_delivery" // Handed to the delivery courier
	OrderStatusDelivered  OrderStatus = "delivered"   // Customer received the item
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerID  uint        `gorm:"not null;index" json:"customer_id"`
	Customer    Customer    `json:"customer,omitempty"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Address     string      `gorm:"not null" json:"address"`
	Wilaya      string      `gorm:"not null" json:"wilaya"`
	Notes       string      `json:"notes"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `json:"product,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"` // snapshot of the product price at order time
}
