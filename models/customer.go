package models

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"not null;index" json:"phone"`
	Email     string    `json:"email"`
	Orders    []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
