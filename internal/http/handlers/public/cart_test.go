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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:cart_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	cartService := service.NewCartService(cart.NewMemoryStore(), productRepo)

	h := New(&provider.Container{CartService: cartService})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(7))
	})
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddCartItem)
	r.PUT("/cart/items/:key", h.UpdateCartItem)
	r.DELETE("/cart/items/:key", h.RemoveCartItem)
	r.DELETE("/cart", h.ClearCart)
	r.PUT("/cart/wholesale", h.SetWholesale)
	return r, db
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, retail, wholesale string, wholesaleAvailable bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:         1,
		Name:               name,
		RetailPrice:        models.NewMoneyFromDecimal(decimal.RequireFromString(retail)),
		WholesalePrice:     models.NewMoneyFromDecimal(decimal.RequireFromString(wholesale)),
		WholesaleAvailable: wholesaleAvailable,
		Stock:              50,
		Unit:               "piece",
		IsActive:           true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

type cartEnvelope struct {
	StatusCode int    `json:"status_code"`
	Msg        string `json:"msg"`
	Data       struct {
		Items []struct {
			Key       string `json:"key"`
			ProductID uint   `json:"product_id"`
			Quantity  int    `json:"quantity"`
			UnitPrice string `json:"unit_price"`
			Subtotal  string `json:"subtotal"`
		} `json:"items"`
		Wholesale bool   `json:"wholesale"`
		ItemCount int    `json:"item_count"`
		Total     string `json:"total"`
	} `json:"data"`
}

func doCartRequest(t *testing.T, r *gin.Engine, method, path, body string) cartEnvelope {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s status want 200 got %d", method, path, w.Code)
	}
	var envelope cartEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v (%s)", err, w.Body.String())
	}
	return envelope
}

func TestCartEndpointsRoundTrip(t *testing.T) {
	r, db := setupCartHandlerTest(t)
	product := seedCartProduct(t, db, "Gala Apples", "10.00", "8.00", true)

	resp := doCartRequest(t, r, http.MethodPost, "/cart/items",
		fmt.Sprintf(`{"product_id":%d,"quantity":2}`, product.ID))
	if resp.StatusCode != 0 {
		t.Fatalf("add status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp.Data.ItemCount != 2 || resp.Data.Total != "20.00" {
		t.Fatalf("retail total want 20.00 x2 got count=%d total=%s", resp.Data.ItemCount, resp.Data.Total)
	}

	resp = doCartRequest(t, r, http.MethodPut, "/cart/wholesale", `{"wholesale":true}`)
	if !resp.Data.Wholesale || resp.Data.Total != "16.00" {
		t.Fatalf("wholesale total want 16.00 got wholesale=%v total=%s", resp.Data.Wholesale, resp.Data.Total)
	}
	if resp.Data.ItemCount != 2 {
		t.Fatalf("mode flip must not change quantities, got %d", resp.Data.ItemCount)
	}

	key := resp.Data.Items[0].Key
	resp = doCartRequest(t, r, http.MethodPut, "/cart/items/"+key, `{"quantity":5}`)
	if resp.Data.ItemCount != 5 || resp.Data.Total != "40.00" {
		t.Fatalf("after quantity update want 5 x 8.00 got count=%d total=%s", resp.Data.ItemCount, resp.Data.Total)
	}

	resp = doCartRequest(t, r, http.MethodDelete, "/cart", "")
	if resp.Data.ItemCount != 0 || len(resp.Data.Items) != 0 {
		t.Fatalf("clear should empty the cart, got %+v", resp.Data)
	}
	if !resp.Data.Wholesale {
		t.Fatalf("clear must keep the pricing mode")
	}
}

func TestAddCartItemRejectsBadInput(t *testing.T) {
	r, db := setupCartHandlerTest(t)
	product := seedCartProduct(t, db, "Bananas", "2.00", "1.50", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items",
		strings.NewReader(fmt.Sprintf(`{"product_id":%d,"quantity":-1}`, product.ID)))
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

	resp := doCartRequest(t, r, http.MethodGet, "/cart", "")
	if resp.Data.ItemCount != 0 {
		t.Fatalf("rejected add must not touch the cart, got %d", resp.Data.ItemCount)
	}
}

func TestRemoveCartItemUnknownKeyIsNoop(t *testing.T) {
	r, db := setupCartHandlerTest(t)
	product := seedCartProduct(t, db, "Whole Milk", "1.20", "0.95", true)

	doCartRequest(t, r, http.MethodPost, "/cart/items",
		fmt.Sprintf(`{"product_id":%d,"quantity":1}`, product.ID))

	resp := doCartRequest(t, r, http.MethodDelete, "/cart/items/999", "")
	if resp.Data.ItemCount != 1 {
		t.Fatalf("removing an unknown key must keep the cart, got %d", resp.Data.ItemCount)
	}
}
