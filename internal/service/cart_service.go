package service

import (
	"context"
	"fmt"

	"github.com/grocer-next/internal/cart"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/repository"
)

// CartLineView is one cart line shaped for responses, with prices
// resolved under the cart's current pricing mode.
type CartLineView struct {
	Key         string       `json:"key"`
	ProductID   uint         `json:"product_id"`
	VariantID   *uint        `json:"variant_id,omitempty"`
	Name        string       `json:"name"`
	VariantName string       `json:"variant_name,omitempty"`
	Unit        string       `json:"unit,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	Quantity    int          `json:"quantity"`
	UnitPrice   models.Money `json:"unit_price"`
	Subtotal    models.Money `json:"subtotal"`
}

// CartView is the whole cart shaped for responses.
type CartView struct {
	Items     []CartLineView `json:"items"`
	Wholesale bool           `json:"wholesale"`
	ItemCount int            `json:"item_count"`
	Total     models.Money   `json:"total"`
}

// CartService keys a per-user cart onto the shared store. Every
// mutation is written through before it returns.
type CartService struct {
	store       cart.Store
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(store cart.Store, productRepo repository.ProductRepository) *CartService {
	return &CartService{store: store, productRepo: productRepo}
}

func cartOwner(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// Get returns the user's cart.
func (s *CartService) Get(ctx context.Context, userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	c, err := cart.Load(ctx, s.store, cartOwner(userID))
	if err != nil {
		return nil, err
	}
	return buildCartView(c), nil
}

// AddItem snapshots the product (and optional variant) and adds it to
// the cart. Adding an existing product+variant line sums quantities.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, variantID *uint, quantity int) (*CartView, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotAvailable
	}

	snapshot := cart.ProductSnapshot{
		ProductID:          product.ID,
		Name:               product.Name,
		Unit:               product.Unit,
		ImageURL:           product.ImageURL,
		RetailPrice:        product.RetailPrice,
		WholesalePrice:     product.WholesalePrice,
		WholesaleAvailable: product.WholesaleAvailable,
		Stock:              product.Stock,
	}

	var variantSnapshot *cart.VariantSnapshot
	if variantID != nil {
		matched := false
		for i := range product.Variants {
			if product.Variants[i].ID == *variantID {
				variantSnapshot = &cart.VariantSnapshot{
					VariantID:       product.Variants[i].ID,
					ProductID:       product.Variants[i].ProductID,
					Name:            product.Variants[i].Name,
					PriceAdjustment: product.Variants[i].PriceAdjustment,
				}
				if product.Variants[i].Stock != nil {
					override := *product.Variants[i].Stock
					variantSnapshot.Stock = &override
				}
				matched = true
				break
			}
		}
		if !matched {
			return nil, ErrVariantMismatch
		}
	}

	owner := cartOwner(userID)
	c, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(snapshot, variantSnapshot, quantity); err != nil {
		return nil, err
	}
	if err := cart.SaveItems(ctx, s.store, owner, c); err != nil {
		return nil, err
	}
	return buildCartView(c), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, key string, quantity int) (*CartView, error) {
	if userID == 0 || key == "" {
		return nil, ErrInvalidInput
	}
	owner := cartOwner(userID)
	c, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	c.UpdateQuantity(key, quantity)
	if err := cart.SaveItems(ctx, s.store, owner, c); err != nil {
		return nil, err
	}
	return buildCartView(c), nil
}

// RemoveItem drops a line.
func (s *CartService) RemoveItem(ctx context.Context, userID uint, key string) (*CartView, error) {
	if userID == 0 || key == "" {
		return nil, ErrInvalidInput
	}
	owner := cartOwner(userID)
	c, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(key)
	if err := cart.SaveItems(ctx, s.store, owner, c); err != nil {
		return nil, err
	}
	return buildCartView(c), nil
}

// Clear empties the cart; the pricing mode is untouched.
func (s *CartService) Clear(ctx context.Context, userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	owner := cartOwner(userID)
	c, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	c.Clear()
	if err := cart.SaveItems(ctx, s.store, owner, c); err != nil {
		return nil, err
	}
	return buildCartView(c), nil
}

// SetWholesale flips the cart's pricing mode.
func (s *CartService) SetWholesale(ctx context.Context, userID uint, on bool) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	owner := cartOwner(userID)
	c, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	c.SetWholesale(on)
	if err := cart.SaveWholesale(ctx, s.store, owner, c); err != nil {
		return nil, err
	}
	return buildCartView(c), nil
}

// loadCart exposes the raw cart for checkout.
func (s *CartService) loadCart(ctx context.Context, userID uint) (*cart.Cart, error) {
	return cart.Load(ctx, s.store, cartOwner(userID))
}

// clearAfterCheckout empties the persisted cart once an order exists.
func (s *CartService) clearAfterCheckout(ctx context.Context, userID uint) error {
	owner := cartOwner(userID)
	c, err := cart.Load(ctx, s.store, owner)
	if err != nil {
		return err
	}
	c.Clear()
	return cart.SaveItems(ctx, s.store, owner, c)
}

func buildCartView(c *cart.Cart) *CartView {
	wholesale := c.Wholesale()
	items := c.Items()
	views := make([]CartLineView, 0, len(items))
	for _, item := range items {
		view := CartLineView{
			Key:       item.Key(),
			ProductID: item.Product.ProductID,
			Name:      item.Product.Name,
			Unit:      item.Product.Unit,
			ImageURL:  item.Product.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice(wholesale),
			Subtotal:  item.Subtotal(wholesale),
		}
		if item.Variant != nil {
			variantID := item.Variant.VariantID
			view.VariantID = &variantID
			view.VariantName = item.Variant.Name
		}
		views = append(views, view)
	}
	return &CartView{
		Items:     views,
		Wholesale: wholesale,
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}
