package main

import (
	"github.com/grocer-next/internal/config"
	"github.com/grocer-next/internal/logger"
	"github.com/grocer-next/internal/models"

	"github.com/shopspring/decimal"
)

func money(value string) models.Money {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return models.NewMoneyFromDecimal(d)
}

func intPtr(v int) *int { return &v }

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	categories := []models.Category{
		{Name: "Fresh Produce", SortOrder: 1},
		{Name: "Dairy & Eggs", SortOrder: 2},
		{Name: "Grains & Rice", SortOrder: 3},
		{Name: "Beverages", SortOrder: 4},
	}
	categoryIDs := map[string]uint{}
	for i := range categories {
		category := categories[i]
		if err := models.DB.Where("name = ?", category.Name).FirstOrCreate(&category).Error; err != nil {
			stdLog.Fatalf("seed category %q failed: %v", category.Name, err)
		}
		categoryIDs[category.Name] = category.ID
	}

	trueValue := true
	products := []models.Product{
		{
			CategoryID:         categoryIDs["Fresh Produce"],
			Name:               "Gala Apples",
			Description:        "Crisp and sweet, sold per kilogram.",
			RetailPrice:        money("3.50"),
			WholesalePrice:     money("2.80"),
			WholesaleAvailable: true,
			Stock:              200,
			Unit:               "kg",
			IsActive:           trueValue,
			SortOrder:          1,
		},
		{
			CategoryID:  categoryIDs["Fresh Produce"],
			Name:        "Bananas",
			Description: "Ripe bananas, sold per bunch.",
			RetailPrice: money("1.80"),
			Stock:       150,
			Unit:        "bunch",
			IsActive:    trueValue,
			SortOrder:   2,
		},
		{
			CategoryID:         categoryIDs["Dairy & Eggs"],
			Name:               "Whole Milk",
			Description:        "Fresh whole milk, 1 liter carton.",
			RetailPrice:        money("1.20"),
			WholesalePrice:     money("0.95"),
			WholesaleAvailable: true,
			Stock:              300,
			Unit:               "carton",
			IsActive:           trueValue,
			SortOrder:          1,
		},
		{
			CategoryID:  categoryIDs["Dairy & Eggs"],
			Name:        "Free-Range Eggs",
			Description: "A dozen free-range eggs.",
			RetailPrice: money("4.20"),
			Stock:       120,
			Unit:        "dozen",
			IsActive:    trueValue,
			SortOrder:   2,
		},
		{
			CategoryID:         categoryIDs["Grains & Rice"],
			Name:               "Basmati Rice",
			Description:        "Long-grain basmati rice.",
			RetailPrice:        money("6.00"),
			WholesalePrice:     money("4.80"),
			WholesaleAvailable: true,
			Stock:              80,
			Unit:               "bag",
			IsActive:           trueValue,
			SortOrder:          1,
		},
		{
			CategoryID:  categoryIDs["Beverages"],
			Name:        "Orange Juice",
			Description: "Freshly squeezed orange juice, 1 liter.",
			RetailPrice: money("2.50"),
			Stock:       90,
			Unit:        "bottle",
			IsActive:    trueValue,
			SortOrder:   1,
		},
	}
	productIDs := map[string]uint{}
	for i := range products {
		product := products[i]
		if err := models.DB.Where("name = ?", product.Name).FirstOrCreate(&product).Error; err != nil {
			stdLog.Fatalf("seed product %q failed: %v", product.Name, err)
		}
		productIDs[product.Name] = product.ID
	}

	variants := []models.ProductVariant{
		{
			ProductID:       productIDs["Basmati Rice"],
			Name:            "5 kg bag",
			PriceAdjustment: money("0.00"),
			Stock:           intPtr(50),
		},
		{
			ProductID:       productIDs["Basmati Rice"],
			Name:            "10 kg bag",
			PriceAdjustment: money("4.50"),
			Stock:           intPtr(30),
		},
		{
			ProductID:       productIDs["Whole Milk"],
			Name:            "Six pack",
			PriceAdjustment: money("5.80"),
		},
	}
	for i := range variants {
		variant := variants[i]
		if err := models.DB.Where("product_id = ? AND name = ?", variant.ProductID, variant.Name).
			FirstOrCreate(&variant).Error; err != nil {
			stdLog.Fatalf("seed variant %q failed: %v", variant.Name, err)
		}
	}

	if err := models.InitDefaultAdmin("admin@example.com", "admin123456"); err != nil {
		stdLog.Fatalf("seed admin failed: %v", err)
	}

	stdLog.Printf("seed complete: %d categories, %d products, %d variants", len(categories), len(products), len(variants))
}
