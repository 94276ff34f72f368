package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grocer-next/internal/cart"
	"github.com/grocer-next/internal/config"
	"github.com/grocer-next/internal/constants"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupQuickAddTest(t *testing.T, matcher Matcher) (*QuickAddService, *CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	cartSvc := NewCartService(cart.NewMemoryStore(), productRepo)
	return NewQuickAddService(productRepo, cartSvc, matcher), cartSvc, db
}

func seedQuickAddProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  1,
		Name:        name,
		RetailPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		Stock:       10,
		Unit:        "piece",
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func TestQuickAddNotFound(t *testing.T) {
	svc, _, _ := setupQuickAddTest(t, nil)
	results, err := svc.Match(context.Background(), []QuickAddLine{{Name: "dragonfruit", Quantity: 1}})
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results want 1 got %d", len(results))
	}
	if results[0].Status != constants.MatchStatusNotFound {
		t.Fatalf("status want not_found got %s", results[0].Status)
	}
	if len(results[0].Candidates) != 0 {
		t.Fatalf("candidates want none got %d", len(results[0].Candidates))
	}
}

func TestQuickAddRejectsAllBlankBatch(t *testing.T) {
	svc, _, _ := setupQuickAddTest(t, nil)
	if _, err := svc.Match(context.Background(), []QuickAddLine{{Name: "  "}, {Name: ""}}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQuickAddFallbackExactMatch(t *testing.T) {
	svc, _, db := setupQuickAddTest(t, nil)
	seedQuickAddProduct(t, db, "Basmati Rice")
	seedQuickAddProduct(t, db, "Rice")

	results, err := svc.Match(context.Background(), []QuickAddLine{{Name: "rice", Quantity: 1}})
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if results[0].Status != constants.MatchStatusMatched {
		t.Fatalf("status want matched got %s", results[0].Status)
	}
	if results[0].Candidates[0].Name != "Rice" {
		t.Fatalf("top candidate want Rice got %s", results[0].Candidates[0].Name)
	}
}

func TestQuickAddFallbackSuggestion(t *testing.T) {
	svc, _, db := setupQuickAddTest(t, nil)
	seedQuickAddProduct(t, db, "Basmati Rice")

	results, err := svc.Match(context.Background(), []QuickAddLine{{Name: "rice", Quantity: 1}})
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if results[0].Status != constants.MatchStatusSuggested {
		t.Fatalf("status want suggested got %s", results[0].Status)
	}
}

func TestQuickAddBrandReordersCandidates(t *testing.T) {
	svc, _, db := setupQuickAddTest(t, nil)
	seedQuickAddProduct(t, db, "Whole Milk")
	branded := seedQuickAddProduct(t, db, "Acme Whole Milk")

	results, err := svc.Match(context.Background(), []QuickAddLine{{Name: "whole milk", Quantity: 1, Brand: "acme"}})
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if len(results[0].Candidates) != 2 {
		t.Fatalf("candidates want 2 got %d", len(results[0].Candidates))
	}
	if results[0].Candidates[0].ID != branded.ID {
		t.Fatalf("brand hit should rank first, got %s", results[0].Candidates[0].Name)
	}
	if results[0].Brand != "acme" {
		t.Fatalf("brand should be echoed, got %q", results[0].Brand)
	}
}

func TestQuickAddBatchUsesSingleMatcherCall(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req struct {
			Items []MatcherQuery `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode matcher request: %v", err)
		}
		// Rank each line's last candidate first.
		verdicts := make([]MatcherVerdict, 0, len(req.Items))
		for _, q := range req.Items {
			ids := make([]uint, 0, len(q.Candidates))
			for i := len(q.Candidates) - 1; i >= 0; i-- {
				ids = append(ids, q.Candidates[i].ProductID)
			}
			verdicts = append(verdicts, MatcherVerdict{Status: "matched", RankedIDs: ids})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": verdicts})
	}))
	defer server.Close()

	matcher := NewHTTPMatcher(config.MatcherConfig{Endpoint: server.URL, TimeoutMS: 2000})
	svc, cartSvc, db := setupQuickAddTest(t, matcher)
	seedQuickAddProduct(t, db, "Rice A")
	wantedRice := seedQuickAddProduct(t, db, "Rice B")
	wantedMilk := seedQuickAddProduct(t, db, "Whole Milk")

	result, err := svc.Add(context.Background(), 1, []QuickAddLine{
		{Name: "rice", Quantity: 2},
		{Name: "milk", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("quick add failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("a batch must cost one matcher call, got %d", calls)
	}
	if len(result.Results) != 2 {
		t.Fatalf("results want 2 got %d", len(result.Results))
	}
	if result.Results[0].Status != constants.MatchStatusMatched {
		t.Fatalf("status want matched got %s", result.Results[0].Status)
	}
	if result.Results[0].Candidates[0].ID != wantedRice.ID {
		t.Fatalf("matcher ranking ignored: top=%d want=%d", result.Results[0].Candidates[0].ID, wantedRice.ID)
	}
	if result.Cart == nil || result.Cart.ItemCount != 3 {
		t.Fatalf("expected 3 items across the cart, got %+v", result.Cart)
	}

	view, err := cartSvc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("cart should hold both top candidates, got %+v", view.Items)
	}
	if view.Items[0].ProductID != wantedRice.ID || view.Items[1].ProductID != wantedMilk.ID {
		t.Fatalf("wrong products in cart: %+v", view.Items)
	}
}

func TestQuickAddMatcherFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	matcher := NewHTTPMatcher(config.MatcherConfig{Endpoint: server.URL, TimeoutMS: 2000})
	svc, _, db := setupQuickAddTest(t, matcher)
	seedQuickAddProduct(t, db, "Rice")

	results, err := svc.Match(context.Background(), []QuickAddLine{{Name: "Rice", Quantity: 1}})
	if err != nil {
		t.Fatalf("match should fall back, got error: %v", err)
	}
	if results[0].Status != constants.MatchStatusMatched {
		t.Fatalf("fallback status want matched got %s", results[0].Status)
	}
}

func TestQuickAddMatcherVerdictCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []MatcherVerdict{}})
	}))
	defer server.Close()

	matcher := NewHTTPMatcher(config.MatcherConfig{Endpoint: server.URL, TimeoutMS: 2000})
	svc, _, db := setupQuickAddTest(t, matcher)
	seedQuickAddProduct(t, db, "Rice")

	// A short verdict list counts as a matcher failure; the local
	// fallback must still answer.
	results, err := svc.Match(context.Background(), []QuickAddLine{{Name: "Rice", Quantity: 1}})
	if err != nil {
		t.Fatalf("match should fall back, got error: %v", err)
	}
	if results[0].Status != constants.MatchStatusMatched {
		t.Fatalf("fallback status want matched got %s", results[0].Status)
	}
}

func TestQuickAddDoesNotAddWhenNotFound(t *testing.T) {
	svc, cartSvc, db := setupQuickAddTest(t, nil)
	seedQuickAddProduct(t, db, "Rice")

	result, err := svc.Add(context.Background(), 1, []QuickAddLine{
		{Name: "dragonfruit", Quantity: 1},
		{Name: "Rice", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("quick add failed: %v", err)
	}
	if result.Results[0].Status != constants.MatchStatusNotFound {
		t.Fatalf("line 1 want not_found got %s", result.Results[0].Status)
	}
	view, err := cartSvc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.ItemCount != 2 || len(view.Items) != 1 {
		t.Fatalf("only the matched line should be added, got %+v", view)
	}
}

func TestQuickAddRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, db := setupQuickAddTest(t, nil)
	seedQuickAddProduct(t, db, "Rice")

	if _, err := svc.Add(context.Background(), 1, []QuickAddLine{{Name: "Rice", Quantity: -1}}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
