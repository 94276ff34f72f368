package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/grocer-next/internal/cart"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/provider"
	"github.com/grocer-next/internal/repository"
	"github.com/grocer-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupQuickAddHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:quickadd_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	cartService := service.NewCartService(cart.NewMemoryStore(), productRepo)
	quickAddService := service.NewQuickAddService(productRepo, cartService, nil)

	h := New(&provider.Container{
		CartService:     cartService,
		QuickAddService: quickAddService,
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(7))
	})
	r.POST("/public/quick-add/match", h.QuickAddMatch)
	r.POST("/cart/quick-add", h.QuickAdd)
	r.GET("/cart", h.GetCart)
	return r, db
}

type quickAddMatchEnvelope struct {
	StatusCode int `json:"status_code"`
	Data       struct {
		Results []struct {
			Name       string `json:"name"`
			Quantity   int    `json:"quantity"`
			Brand      string `json:"brand"`
			Status     string `json:"status"`
			Candidates []struct {
				ID   uint   `json:"id"`
				Name string `json:"name"`
			} `json:"candidates"`
		} `json:"results"`
	} `json:"data"`
}

func TestQuickAddMatchAcceptsBatchedItems(t *testing.T) {
	r, db := setupQuickAddHandlerTest(t)
	if err := db.Create(&models.Product{
		CategoryID: 1, Name: "Acme Whole Milk", Unit: "bottle", IsActive: true, Stock: 5,
	}).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/public/quick-add/match",
		strings.NewReader(`{"items":[{"name":"milk","quantity":2,"brand":"acme"},{"name":"dragonfruit","quantity":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d (%s)", w.Code, w.Body.String())
	}
	var envelope quickAddMatchEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	if envelope.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", envelope.StatusCode)
	}
	results := envelope.Data.Results
	if len(results) != 2 {
		t.Fatalf("results want 2 got %d", len(results))
	}
	if results[0].Name != "milk" || results[0].Quantity != 2 || results[0].Brand != "acme" {
		t.Fatalf("line echo wrong: %+v", results[0])
	}
	if results[0].Status != "suggested" || len(results[0].Candidates) != 1 {
		t.Fatalf("milk line want a suggestion, got %+v", results[0])
	}
	if results[1].Status != "not_found" {
		t.Fatalf("dragonfruit line want not_found got %s", results[1].Status)
	}
}

func TestQuickAddAddsEveryMatchedLine(t *testing.T) {
	r, db := setupQuickAddHandlerTest(t)
	for _, name := range []string{"Rice", "Whole Milk"} {
		if err := db.Create(&models.Product{
			CategoryID: 1, Name: name, Unit: "piece", IsActive: true, Stock: 10,
		}).Error; err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/quick-add",
		strings.NewReader(`{"items":[{"name":"Rice","quantity":2},{"name":"Whole Milk"}]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d (%s)", w.Code, w.Body.String())
	}

	resp := doCartRequest(t, r, http.MethodGet, "/cart", "")
	// Rice x2 plus the quantity-defaulted milk line.
	if resp.Data.ItemCount != 3 || len(resp.Data.Items) != 2 {
		t.Fatalf("both lines should land in the cart, got %+v", resp.Data)
	}
}

func TestQuickAddMatchRejectsMissingItems(t *testing.T) {
	r, _ := setupQuickAddHandlerTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/public/quick-add/match",
		strings.NewReader(`{"name":"milk"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var envelope struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	if envelope.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", envelope.StatusCode)
	}
}
