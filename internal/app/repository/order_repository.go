package repository

import (
	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByIDs(ids []uint) ([]model.Order, error)
	FindBySessionID(sessionID string) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its items inside the caller's
// transaction; pass nil to use the repository's own connection.
func (r *orderRepository) Create(tx *gorm.DB, order *model.Order) error {
	db := tx
	if db == nil {
		db = r.db
	}

	logger.Debug("Creating order in database", map[string]interface{}{
		"order_number": order.OrderNumber,
		"items":        len(order.OrderItems),
	})

	if err := db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"order_number": order.OrderNumber,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("OrderItems").First(&order, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
				"order_id": id,
			})
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDs(ids []uint) ([]model.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var orders []model.Order
	err := r.db.Where("id IN ?", ids).
		Preload("OrderItems").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by IDs in database", err, map[string]interface{}{
			"order_ids": ids,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindBySessionID(sessionID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("session_id = ?", sessionID).
		Preload("OrderItems").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by session in database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return orders, nil
}
