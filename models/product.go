package models

import "time"

type Product struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	NameAr           string    `gorm:"not null" json:"name_ar"`
	Description      string    `json:"description"`
	DescriptionAr    string    `json:"description_ar"`
	Price            float64   `gorm:"not null" json:"price"`
	CategoryID       uint      `gorm:"not null;index" json:"category_id"`
	Category         Category  `json:"category,omitempty"`
	ImageURL         string    `json:"image_url"`
	AdditionalImages string    `json:"additional_images"` // JSON array of image URLs
	InStock          bool      `json:"in_stock"`
	Featured         bool      `json:"featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
