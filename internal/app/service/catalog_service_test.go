package service

import (
	"testing"

	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/internal/app/repository"
	"github.com/paikari/paikariworld-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (CatalogService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	variationRepo := repository.NewVariationRepository(testDB)
	return NewCatalogService(productRepo, variationRepo), testDB
}

func createCatalogProduct(t *testing.T, testDB *gorm.DB) *model.Product {
	stock := 5
	price := 27000.0
	product := &model.Product{
		Name:          "Oversized Tee",
		RegularPrice:  29000,
		SalePrice:     25000,
		StockQuantity: 10,
		IsPublished:   true,
		Variations: []model.ProductVariation{
			{AttributeID: 1, AttributeName: "size", Value: "M"},
			{AttributeID: 1, AttributeName: "size", Value: "L", StockQuantity: &stock, Price: &price},
		},
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestCatalogService_ListProducts(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)

	products, total, err := catalogService.ListProducts(20, 0)
	assert.NoError(t, err)
	assert.Len(t, products, 0)
	assert.Equal(t, int64(0), total)

	createCatalogProduct(t, testDB)
	require.NoError(t, testDB.Create(&model.Product{
		Name:         "Unlisted",
		RegularPrice: 1000,
		SalePrice:    1000,
		IsPublished:  false,
	}).Error)

	products, total, err = catalogService.ListProducts(20, 0)
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Oversized Tee", products[0].Name)
}

func TestCatalogService_GetProduct(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	created := createCatalogProduct(t, testDB)

	product, err := catalogService.GetProduct(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Name, product.Name)
	assert.Len(t, product.Variations, 2)

	_, err = catalogService.GetProduct(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ResolveSelection(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	created := createCatalogProduct(t, testDB)

	other := &model.Product{
		Name:         "Other",
		RegularPrice: 1000,
		SalePrice:    1000,
		Variations: []model.ProductVariation{
			{AttributeID: 1, AttributeName: "size", Value: "S"},
		},
	}
	require.NoError(t, testDB.Create(other).Error)

	t.Run("No variations selected", func(t *testing.T) {
		product, selected, err := catalogService.ResolveSelection(created.ID, nil)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, product.ID)
		assert.Empty(t, selected)
	})

	t.Run("Valid selection snapshots overrides", func(t *testing.T) {
		ids := []uint{created.Variations[0].ID, created.Variations[1].ID}
		_, selected, err := catalogService.ResolveSelection(created.ID, ids)
		assert.NoError(t, err)
		require.Len(t, selected, 2)

		assert.Equal(t, "M", selected[0].Value)
		assert.Nil(t, selected[0].Stock)
		assert.Nil(t, selected[0].Price)

		assert.Equal(t, "L", selected[1].Value)
		require.NotNil(t, selected[1].Stock)
		assert.Equal(t, 5, *selected[1].Stock)
		require.NotNil(t, selected[1].Price)
		assert.Equal(t, 27000.0, *selected[1].Price)
	})

	t.Run("Unknown variation ID", func(t *testing.T) {
		_, _, err := catalogService.ResolveSelection(created.ID, []uint{9999})
		assert.ErrorIs(t, err, ErrInvalidVariation)
	})

	t.Run("Variation of another product", func(t *testing.T) {
		_, _, err := catalogService.ResolveSelection(created.ID, []uint{other.Variations[0].ID})
		assert.ErrorIs(t, err, ErrInvalidVariation)
	})

	t.Run("Unknown product", func(t *testing.T) {
		_, _, err := catalogService.ResolveSelection(9999, nil)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
