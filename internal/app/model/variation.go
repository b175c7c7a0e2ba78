package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariation is one attribute/value combination of a product
// (size, color, ...). Stock and price are overrides: when nil the
// product's own stock and sale price apply.
type ProductVariation struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"index;not null" json:"product_id"`
	AttributeID   uint           `gorm:"index;not null" json:"attribute_id"`
	AttributeName string         `gorm:"not null" json:"attribute_name"`
	Value         string         `gorm:"not null" json:"value"`
	StockQuantity *int           `json:"stock,omitempty"`
	Price         *float64       `json:"price,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariation) TableName() string {
	return "product_variations"
}
