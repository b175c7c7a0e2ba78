package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	RegularPrice  float64        `gorm:"not null" json:"regular_price"`
	SalePrice     float64        `gorm:"not null" json:"sale_price"`
	StockQuantity int            `gorm:"default:0" json:"stock"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images,omitempty"`
	IsPreorder    bool           `gorm:"default:false" json:"is_preorder"`
	IsPublished   bool           `gorm:"default:true;index" json:"is_published"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Variations []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variations,omitempty"`
	OrderItems []OrderItem        `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
