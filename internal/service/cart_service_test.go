package service

import (
	"context"
	"testing"

	"github.com/grocer-next/internal/cart"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cart.NewMemoryStore(), productRepo), db
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, retail, wholesale int64, wholesaleAvailable bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:         1,
		Name:               name,
		RetailPrice:        models.NewMoneyFromDecimal(decimal.NewFromInt(retail)),
		WholesalePrice:     models.NewMoneyFromDecimal(decimal.NewFromInt(wholesale)),
		WholesaleAvailable: wholesaleAvailable,
		Stock:              100,
		Unit:               "kg",
		IsActive:           true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func seedCartVariant(t *testing.T, db *gorm.DB, productID uint, name string, adjustment int64) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:       productID,
		Name:            name,
		PriceAdjustment: models.NewMoneyFromDecimal(decimal.NewFromInt(adjustment)),
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("seed variant failed: %v", err)
	}
	return variant
}

func TestCartServiceWholesaleScenario(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := seedCartProduct(t, db, "Apples", 10, 8, true)

	view, err := svc.AddItem(ctx, 1, product.ID, nil, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if view.Total.String() != "20.00" {
		t.Fatalf("retail total want 20.00 got %s", view.Total.String())
	}

	view, err = svc.SetWholesale(ctx, 1, true)
	if err != nil {
		t.Fatalf("set wholesale failed: %v", err)
	}
	if view.Total.String() != "16.00" {
		t.Fatalf("wholesale total want 16.00 got %s", view.Total.String())
	}
	if view.ItemCount != 2 {
		t.Fatalf("item count want 2 got %d", view.ItemCount)
	}

	key := view.Items[0].Key
	view, err = svc.UpdateQuantity(ctx, 1, key, 3)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if view.Total.String() != "24.00" {
		t.Fatalf("total after update want 24.00 got %s", view.Total.String())
	}

	view, err = svc.RemoveItem(ctx, 1, key)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if view.Total.String() != "0.00" || view.ItemCount != 0 {
		t.Fatalf("after remove want empty cart, got total=%s count=%d", view.Total.String(), view.ItemCount)
	}
}

func TestCartServiceVariantPricing(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := seedCartProduct(t, db, "Rice", 5, 5, false)
	variant := seedCartVariant(t, db, product.ID, "Large bag", 2)

	view, err := svc.AddItem(ctx, 1, product.ID, &variant.ID, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if view.Total.String() != "7.00" {
		t.Fatalf("variant total want 7.00 got %s", view.Total.String())
	}
	if view.Items[0].VariantName != "Large bag" {
		t.Fatalf("variant name lost: %+v", view.Items[0])
	}
}

func TestCartServiceSnapshotSurvivesPriceChange(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := seedCartProduct(t, db, "Apples", 10, 8, true)

	if _, err := svc.AddItem(ctx, 1, product.ID, nil, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// A later catalog edit must not reprice existing lines.
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("retail_price", models.NewMoneyFromDecimal(decimal.NewFromInt(99))).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	view, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Total.String() != "10.00" {
		t.Fatalf("snapshot price want 10.00 got %s", view.Total.String())
	}
}

func TestCartServiceRejectsUnknownVariant(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := seedCartProduct(t, db, "Rice", 5, 5, false)
	other := seedCartProduct(t, db, "Beans", 3, 3, false)
	variant := seedCartVariant(t, db, other.ID, "Large bag", 2)

	if _, err := svc.AddItem(ctx, 1, product.ID, &variant.ID, 1); err != ErrVariantMismatch {
		t.Fatalf("want ErrVariantMismatch got %v", err)
	}
}

func TestCartServiceRejectsInactiveProduct(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := seedCartProduct(t, db, "Old stock", 5, 5, false)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := svc.AddItem(ctx, 1, product.ID, nil, 1); err != ErrProductNotAvailable {
		t.Fatalf("want ErrProductNotAvailable got %v", err)
	}
}

func TestCartServiceCartsAreIsolatedPerUser(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	ctx := context.Background()
	product := seedCartProduct(t, db, "Apples", 10, 8, true)

	if _, err := svc.AddItem(ctx, 1, product.ID, nil, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := svc.Get(ctx, 2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.ItemCount != 0 {
		t.Fatalf("user 2 cart should be empty, got %d", view.ItemCount)
	}
}
