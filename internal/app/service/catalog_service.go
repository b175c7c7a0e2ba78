package service

import (
	"errors"

	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/internal/app/repository"
	"github.com/paikari/paikariworld-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidVariation = errors.New("invalid product variation")
)

// CatalogService reads the product catalog and resolves a client's
// variation selection into the snapshots the cart store consumes.
type CatalogService interface {
	ListProducts(limit, offset int) ([]model.Product, int64, error)
	GetProduct(id uint) (*model.Product, error)
	ResolveSelection(productID uint, variationIDs []uint) (*model.Product, []model.SelectedVariation, error)
}

type catalogService struct {
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
}

func NewCatalogService(productRepo repository.ProductRepository, variationRepo repository.VariationRepository) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		variationRepo: variationRepo,
	}
}

func (s *catalogService) ListProducts(limit, offset int) ([]model.Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	products, total, err := s.productRepo.FindAll(limit, offset)
	if err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, 0, err
	}
	return products, total, nil
}

func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// ResolveSelection loads the product and turns the selected variation
// IDs into snapshots. Every ID must exist and belong to the product.
func (s *catalogService) ResolveSelection(productID uint, variationIDs []uint) (*model.Product, []model.SelectedVariation, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, nil, err
	}

	if len(variationIDs) == 0 {
		return product, nil, nil
	}

	variations, err := s.variationRepo.FindByIDs(variationIDs)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[uint]model.ProductVariation, len(variations))
	for _, v := range variations {
		byID[v.ID] = v
	}

	selected := make([]model.SelectedVariation, 0, len(variationIDs))
	for _, id := range variationIDs {
		v, ok := byID[id]
		if !ok || v.ProductID != productID {
			logger.Warn("Variation does not belong to product", map[string]interface{}{
				"product_id":   productID,
				"variation_id": id,
			})
			return nil, nil, ErrInvalidVariation
		}
		selected = append(selected, model.SelectedVariation{
			ID:          v.ID,
			AttributeID: v.AttributeID,
			Value:       v.Value,
			Stock:       v.StockQuantity,
			Price:       v.Price,
		})
	}
	return product, selected, nil
}
