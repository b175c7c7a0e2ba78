package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderNumber     string         `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`
	SessionID       string         `gorm:"type:varchar(64);index;not null" json:"-"`
	CustomerName    string         `gorm:"not null" json:"customer_name"`
	CustomerPhone   string         `gorm:"type:varchar(30)" json:"customer_phone"`
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	ItemCount       int            `gorm:"not null" json:"item_count"`
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots one cart line at checkout time. Name, price and
// the variation summary are copied from the line item so the order
// survives later catalog edits.
type OrderItem struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OrderID          uint      `gorm:"not null;index" json:"order_id"`
	ProductID        uint      `gorm:"not null;index" json:"product_id"`
	Name             string    `gorm:"not null" json:"name"`
	Price            float64   `gorm:"not null" json:"price"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	Image            string    `json:"image,omitempty"`
	IsPreorder       bool      `gorm:"default:false" json:"is_preorder"`
	VariationSummary string    `gorm:"type:text" json:"variation_summary,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
