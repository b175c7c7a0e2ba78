package db

import (
	"github.com/lib/pq"
	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Product{},
		&model.ProductVariation{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds a starter catalog so a fresh environment has something to
// browse. Skips when products already exist.
func Seed() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Catalog already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding starter catalog...")

	stock := func(n int) *int { return &n }
	price := func(p float64) *float64 { return &p }

	products := []model.Product{
		{
			Name:          "Classic Cotton T-Shirt",
			Description:   "Everyday unisex tee in heavyweight cotton.",
			RegularPrice:  1290,
			SalePrice:     990,
			StockQuantity: 40,
			Images:        pq.StringArray{"tshirt-white.jpg", "tshirt-back.jpg"},
			Variations: []model.ProductVariation{
				{AttributeID: 1, AttributeName: "Size", Value: "M", StockQuantity: stock(15)},
				{AttributeID: 1, AttributeName: "Size", Value: "L", StockQuantity: stock(10)},
				{AttributeID: 2, AttributeName: "Color", Value: "Black", StockQuantity: stock(25), Price: price(1090)},
			},
		},
		{
			Name:          "Wireless Earbuds",
			Description:   "Bluetooth 5.3 earbuds with charging case.",
			RegularPrice:  3490,
			SalePrice:     2990,
			StockQuantity: 12,
			Images:        pq.StringArray{"earbuds-front.jpg", "earbuds-case.jpg"},
		},
		{
			Name:          "Limited Sneaker Drop",
			Description:   "Pre-order; ships next month.",
			RegularPrice:  8990,
			SalePrice:     7990,
			StockQuantity: 100,
			IsPreorder:    true,
			Images:        pq.StringArray{"sneaker-side.jpg"},
		},
	}

	for _, product := range products {
		if err := DB.Create(&product).Error; err != nil {
			logger.Error("Failed to seed product", err, map[string]interface{}{
				"product": product.Name,
			})
			return err
		}
	}

	logger.Info("Starter catalog seeded successfully", map[string]interface{}{
		"products": len(products),
	})
	return nil
}
