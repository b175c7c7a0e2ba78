package repository

import (
	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariationRepository interface {
	FindByIDs(ids []uint) ([]model.ProductVariation, error)
	FindByProductID(productID uint) ([]model.ProductVariation, error)
}

type variationRepository struct {
	db *gorm.DB
}

func NewVariationRepository(db *gorm.DB) VariationRepository {
	return &variationRepository{db: db}
}

func (r *variationRepository) FindByIDs(ids []uint) ([]model.ProductVariation, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var variations []model.ProductVariation
	if err := r.db.Where("id IN ?", ids).Find(&variations).Error; err != nil {
		logger.Error("Failed to find variations by IDs in database", err, map[string]interface{}{
			"variation_ids": ids,
		})
		return nil, err
	}
	return variations, nil
}

func (r *variationRepository) FindByProductID(productID uint) ([]model.ProductVariation, error) {
	var variations []model.ProductVariation
	if err := r.db.Where("product_id = ?", productID).Find(&variations).Error; err != nil {
		logger.Error("Failed to find variations by product in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variations, nil
}
