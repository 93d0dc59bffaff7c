package model

import "time"

// Product — серверная модель товара каталога.
// JSON-поля совпадают с тем, что витрина получает от коммерческого API.
type Product struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `gorm:"not null;index" json:"category"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	ImageURL    string  `gorm:"column:image_url" json:"imageUrl,omitempty"`
	Promotional bool    `gorm:"not null;default:false;index" json:"promotional"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}
