package cart

import (
	"fmt"

	"github.com/grocer-next/internal/models"
)

// ProductSnapshot is the slice of product state captured when a line is
// added. Both price tiers are kept so the pricing mode can flip later
// without touching the catalog.
type ProductSnapshot struct {
	ProductID          uint         `json:"product_id"`
	Name               string       `json:"name"`
	Unit               string       `json:"unit,omitempty"`
	ImageURL           string       `json:"image_url,omitempty"`
	RetailPrice        models.Money `json:"retail_price"`
	WholesalePrice     models.Money `json:"wholesale_price"`
	WholesaleAvailable bool         `json:"wholesale_available"`
	Stock              int          `json:"stock"`
}

// VariantSnapshot captures the chosen variant at add time. Stock is
// the per-variant override; nil means the product stock applies.
type VariantSnapshot struct {
	VariantID       uint         `json:"variant_id"`
	ProductID       uint         `json:"product_id"`
	Name            string       `json:"name"`
	PriceAdjustment models.Money `json:"price_adjustment"`
	Stock           *int         `json:"stock,omitempty"`
}

// LineItem is one cart line. Lines are identified by product plus
// optional variant; the same product under two variants is two lines.
type LineItem struct {
	Product  ProductSnapshot  `json:"product"`
	Variant  *VariantSnapshot `json:"variant,omitempty"`
	Quantity int              `json:"quantity"`
}

// LineKey identifies a line within a cart.
func LineKey(productID uint, variantID *uint) string {
	if variantID == nil {
		return fmt.Sprintf("%d", productID)
	}
	return fmt.Sprintf("%d:%d", productID, *variantID)
}

// Key returns the line's identity key.
func (li LineItem) Key() string {
	if li.Variant == nil {
		return LineKey(li.Product.ProductID, nil)
	}
	return LineKey(li.Product.ProductID, &li.Variant.VariantID)
}

// UnitPrice resolves the per-unit price for the given pricing mode:
// the wholesale tier applies only when the mode is on and the product
// offers it, then the variant adjustment is added.
func (li LineItem) UnitPrice(wholesale bool) models.Money {
	base := li.Product.RetailPrice
	if wholesale && li.Product.WholesaleAvailable {
		base = li.Product.WholesalePrice
	}
	if li.Variant != nil {
		base = base.AddMoney(li.Variant.PriceAdjustment)
	}
	return base
}

// Subtotal is UnitPrice times Quantity.
func (li LineItem) Subtotal(wholesale bool) models.Money {
	return li.UnitPrice(wholesale).MulInt(li.Quantity)
}
