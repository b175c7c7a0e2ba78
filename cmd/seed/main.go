package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/paikari/paikariworld-backend/config"
	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/internal/app/repository"
	"github.com/paikari/paikariworld-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a product catalog from an XLSX export.
//
// Sheet "Products" columns:
//
//	name | description | regular_price | sale_price | stock | images (comma separated URLs) | is_preorder | is_published
//
// Sheet "Variations" columns (optional):
//
//	product_name | attribute_id | attribute_name | value | stock | price
//
// Variation stock and price may be left blank to inherit from the
// product.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	variationCount := 0
	for _, p := range products {
		variationCount += len(p.Variations)
	}
	fmt.Printf("Total products to import: %d (%d variations)\n", len(products), variationCount)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 100
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readCatalogFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	products, index, err := readProducts(f)
	if err != nil {
		return nil, err
	}
	if err := readVariations(f, products, index); err != nil {
		return nil, err
	}

	return products, nil
}

// readProducts parses the Products sheet and returns the products plus
// a name index for attaching variations.
func readProducts(f *excelize.File) ([]model.Product, map[string]int, error) {
	sheetName := "Products"
	if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, nil, fmt.Errorf("no sheets found in XLSX file")
		}
	}
	fmt.Printf("Reading product sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	index := make(map[string]int)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 5 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(cell(row, 0))
		regularPrice := parseFloat(cell(row, 2))
		salePrice := parseFloat(cell(row, 3))
		stock := parseIntCell(cell(row, 4))

		if name == "" || regularPrice <= 0 {
			skippedCount++
			continue
		}
		if _, dup := index[name]; dup {
			skippedCount++
			continue
		}
		if salePrice <= 0 {
			salePrice = regularPrice
		}

		var images pq.StringArray
		for _, url := range strings.Split(cell(row, 5), ",") {
			if url = strings.TrimSpace(url); url != "" {
				images = append(images, url)
			}
		}

		products = append(products, model.Product{
			Name:          name,
			Description:   strings.TrimSpace(cell(row, 1)),
			RegularPrice:  regularPrice,
			SalePrice:     salePrice,
			StockQuantity: stock,
			Images:        images,
			IsPreorder:    parseBool(cell(row, 6)),
			IsPublished:   cell(row, 7) == "" || parseBool(cell(row, 7)),
		})
		index[name] = len(products) - 1
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d product rows\n", skippedCount)
	}
	if len(products) == 0 {
		return nil, nil, fmt.Errorf("no valid products in XLSX file")
	}

	return products, index, nil
}

func readVariations(f *excelize.File, products []model.Product, index map[string]int) error {
	if idx, _ := f.GetSheetIndex("Variations"); idx < 0 {
		return nil
	}

	rows, err := f.GetRows("Variations")
	if err != nil {
		return fmt.Errorf("failed to read variations: %w", err)
	}

	skippedCount := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 4 {
			skippedCount++
			continue
		}

		productName := strings.TrimSpace(cell(row, 0))
		pos, ok := index[productName]
		if !ok {
			skippedCount++
			continue
		}

		attributeID := parseIntCell(cell(row, 1))
		attributeName := strings.TrimSpace(cell(row, 2))
		value := strings.TrimSpace(cell(row, 3))
		if attributeID <= 0 || attributeName == "" || value == "" {
			skippedCount++
			continue
		}

		variation := model.ProductVariation{
			AttributeID:   uint(attributeID),
			AttributeName: attributeName,
			Value:         value,
		}
		if s := strings.TrimSpace(cell(row, 4)); s != "" {
			stock := parseIntCell(s)
			variation.StockQuantity = &stock
		}
		if s := strings.TrimSpace(cell(row, 5)); s != "" {
			price := parseFloat(s)
			variation.Price = &price
		}

		products[pos].Variations = append(products[pos].Variations, variation)
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d variation rows\n", skippedCount)
	}

	return nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntCell(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
