package model

import "time"

type Product struct {
	Base
	Description    string     `gorm:"type:varchar(255);not null;index" json:"description" validate:"required"`
	SalePrice      float64    `gorm:"not null" json:"sale_price" validate:"gte=0"`
	Barcode        string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"barcode" validate:"required"`
	Section        string     `gorm:"type:varchar(100);index" json:"section"`
	Stock          int        `gorm:"default:0" json:"stock"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	ImageURL       *string    `gorm:"type:varchar(500)" json:"image_url,omitempty"`
}
