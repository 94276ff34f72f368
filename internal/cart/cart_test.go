package cart

import (
	"testing"

	"github.com/grocer-next/internal/models"
)

func money(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func appleSnapshot(t *testing.T) ProductSnapshot {
	t.Helper()
	return ProductSnapshot{
		ProductID:          1,
		Name:               "Apples",
		Unit:               "kg",
		RetailPrice:        money(t, "10.00"),
		WholesalePrice:     money(t, "8.00"),
		WholesaleAvailable: true,
		Stock:              50,
	}
}

func riceSnapshot(t *testing.T) ProductSnapshot {
	t.Helper()
	return ProductSnapshot{
		ProductID:      2,
		Name:           "Rice",
		Unit:           "bag",
		RetailPrice:    money(t, "5.00"),
		WholesalePrice: money(t, "5.00"),
		Stock:          30,
	}
}

func largeBagVariant(t *testing.T) *VariantSnapshot {
	t.Helper()
	override := 8
	return &VariantSnapshot{
		VariantID:       7,
		ProductID:       2,
		Name:            "Large bag",
		PriceAdjustment: money(t, "2.00"),
		Stock:           &override,
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 0); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := c.AddItem(appleSnapshot(t), nil, -3); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
}

func TestAddItemMergesSameKey(t *testing.T) {
	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddItem(appleSnapshot(t), nil, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	if got := c.ItemCount(); got != 5 {
		t.Fatalf("expected item count 5, got %d", got)
	}
}

func TestVariantsAreDistinctLines(t *testing.T) {
	c := New()
	if err := c.AddItem(riceSnapshot(t), nil, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddItem(riceSnapshot(t), largeBagVariant(t), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", c.Len())
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddItem(riceSnapshot(t), nil, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Merge must not move the first line.
	if err := c.AddItem(appleSnapshot(t), nil, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := c.Items()
	if items[0].Product.Name != "Apples" || items[1].Product.Name != "Rice" {
		t.Fatalf("unexpected order: %q, %q", items[0].Product.Name, items[1].Product.Name)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	key := LineKey(1, nil)
	c.UpdateQuantity(key, 0)
	if c.Len() != 0 {
		t.Fatalf("expected line removed, got %d lines", c.Len())
	}

	if err := c.AddItem(appleSnapshot(t), nil, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.UpdateQuantity(key, -1)
	if c.Len() != 0 {
		t.Fatalf("expected line removed on negative quantity, got %d lines", c.Len())
	}
}

func TestUpdateQuantityMissingKeyIsNoop(t *testing.T) {
	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.UpdateQuantity("999", 4)
	if got := c.ItemCount(); got != 2 {
		t.Fatalf("expected item count 2, got %d", got)
	}
}

func TestWholesalePricingScenario(t *testing.T) {
	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := c.Total().String(); got != "20.00" {
		t.Fatalf("retail total: expected 20.00, got %s", got)
	}

	c.SetWholesale(true)
	if got := c.Total().String(); got != "16.00" {
		t.Fatalf("wholesale total: expected 16.00, got %s", got)
	}
	if got := c.ItemCount(); got != 2 {
		t.Fatalf("item count must not change with pricing mode, got %d", got)
	}

	c.UpdateQuantity(LineKey(1, nil), 3)
	if got := c.Total().String(); got != "24.00" {
		t.Fatalf("after quantity update: expected 24.00, got %s", got)
	}

	c.RemoveItem(LineKey(1, nil))
	if got := c.Total().String(); got != "0.00" {
		t.Fatalf("after remove: expected 0.00, got %s", got)
	}
	if got := c.ItemCount(); got != 0 {
		t.Fatalf("after remove: expected item count 0, got %d", got)
	}
}

func TestWholesaleModeSkipsUnavailableProducts(t *testing.T) {
	c := New()
	c.SetWholesale(true)
	if err := c.AddItem(riceSnapshot(t), nil, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Rice does not offer a wholesale tier; retail applies.
	if got := c.Total().String(); got != "10.00" {
		t.Fatalf("expected 10.00, got %s", got)
	}
}

func TestVariantAdjustmentApplied(t *testing.T) {
	c := New()
	if err := c.AddItem(riceSnapshot(t), largeBagVariant(t), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := c.Total().String(); got != "7.00" {
		t.Fatalf("expected 7.00, got %s", got)
	}
}

func TestClearKeepsPricingMode(t *testing.T) {
	c := New()
	c.SetWholesale(true)
	if err := c.AddItem(appleSnapshot(t), nil, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", c.Len())
	}
	if !c.Wholesale() {
		t.Fatal("clear must not reset the pricing mode")
	}
}

func TestSnapshotShieldsFromCatalogEdits(t *testing.T) {
	c := New()
	snap := appleSnapshot(t)
	if err := c.AddItem(snap, nil, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Mutating the caller's copy after add must not leak into the cart.
	snap.RetailPrice = money(t, "99.00")
	if got := c.Total().String(); got != "10.00" {
		t.Fatalf("expected 10.00, got %s", got)
	}
}
