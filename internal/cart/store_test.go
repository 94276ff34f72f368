package cart

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddItem(riceSnapshot(t), largeBagVariant(t), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.SetWholesale(true)

	if err := SaveItems(ctx, store, "u1", c); err != nil {
		t.Fatalf("save items: %v", err)
	}
	if err := SaveWholesale(ctx, store, "u1", c); err != nil {
		t.Fatalf("save wholesale: %v", err)
	}

	loaded, err := Load(ctx, store, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", loaded.Len())
	}
	if !loaded.Wholesale() {
		t.Fatal("expected wholesale mode on after reload")
	}
	if got := loaded.Total().String(); got != "23.00" {
		t.Fatalf("expected total 23.00 after reload, got %s", got)
	}
	items := loaded.Items()
	if items[0].Product.Name != "Apples" || items[1].Product.Name != "Rice" {
		t.Fatalf("order lost on reload: %q, %q", items[0].Product.Name, items[1].Product.Name)
	}
	if items[1].Variant == nil || items[1].Variant.Name != "Large bag" {
		t.Fatalf("variant lost on reload: %+v", items[1].Variant)
	}
	if items[0].Product.Stock != 50 {
		t.Fatalf("product stock lost on reload: %d", items[0].Product.Stock)
	}
	if items[1].Variant.ProductID != 2 || items[1].Variant.Stock == nil || *items[1].Variant.Stock != 8 {
		t.Fatalf("variant snapshot incomplete on reload: %+v", items[1].Variant)
	}
}

func TestLoadMissingOwnerYieldsEmptyCart(t *testing.T) {
	loaded, err := Load(context.Background(), NewMemoryStore(), "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 0 || loaded.Wholesale() {
		t.Fatalf("expected empty retail cart, got %d lines wholesale=%v", loaded.Len(), loaded.Wholesale())
	}
}

func TestLoadDiscardsMalformedItems(t *testing.T) {
	store := NewMemoryStore()
	store.SeedItems("u1", "{not json")
	store.SeedWholesale("u1", "true")

	loaded, err := Load(context.Background(), store, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("malformed items must reset to empty, got %d lines", loaded.Len())
	}
	// The pricing-mode slot is independent and stays valid.
	if !loaded.Wholesale() {
		t.Fatal("expected wholesale mode preserved")
	}
}

func TestLoadDropsInvalidLines(t *testing.T) {
	store := NewMemoryStore()
	tampered := []LineItem{
		{Product: appleSnapshot(t), Quantity: 2},
		{Product: riceSnapshot(t), Quantity: 0},
		{Product: appleSnapshot(t), Quantity: -3},
		{Quantity: 4},
	}
	payload, err := encodeItems(tampered)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	store.SeedItems("u1", payload)

	loaded, err := Load(context.Background(), store, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("invalid lines must be dropped, got %d lines", loaded.Len())
	}
	if got := loaded.ItemCount(); got != 2 {
		t.Fatalf("expected item count 2, got %d", got)
	}
	if items := loaded.Items(); items[0].Product.Name != "Apples" {
		t.Fatalf("surviving line should be the valid one, got %q", items[0].Product.Name)
	}
}

func TestLoadDiscardsMalformedWholesale(t *testing.T) {
	store := NewMemoryStore()
	store.SeedWholesale("u1", "yes")

	loaded, err := Load(context.Background(), store, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Wholesale() {
		t.Fatal("malformed pricing-mode slot must reset to retail")
	}
}

func TestClearRemovesBothSlots(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := New()
	if err := c.AddItem(appleSnapshot(t), nil, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.SetWholesale(true)
	if err := SaveItems(ctx, store, "u1", c); err != nil {
		t.Fatalf("save items: %v", err)
	}
	if err := SaveWholesale(ctx, store, "u1", c); err != nil {
		t.Fatalf("save wholesale: %v", err)
	}

	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err := Load(ctx, store, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 0 || loaded.Wholesale() {
		t.Fatalf("expected empty retail cart after clear, got %d lines wholesale=%v", loaded.Len(), loaded.Wholesale())
	}
}
