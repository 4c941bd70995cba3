package models

import (
	"time"
)

type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `json:"-" gorm:"foreignKey:CategoryID"`
	// ImageURL is the public URL served to clients; ImagePath is the
	// storage object path used when deleting the asset.
	ImageURL  string    `json:"image_url"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CategoryName string `json:"category_name" gorm:"-"`
}
