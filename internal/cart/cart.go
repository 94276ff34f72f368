package cart

import (
	"errors"

	"github.com/grocer-next/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity is returned when an add carries a non-positive quantity.
	ErrInvalidQuantity = errors.New("cart: quantity must be positive")
)

// Cart holds ordered line items plus the pricing mode. Totals and item
// counts are derived on access, never stored.
type Cart struct {
	items     []LineItem
	wholesale bool
}

// New returns an empty cart in retail mode.
func New() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from persisted state. Lines keep their order.
func Restore(items []LineItem, wholesale bool) *Cart {
	c := &Cart{wholesale: wholesale}
	if len(items) > 0 {
		c.items = make([]LineItem, len(items))
		copy(c.items, items)
	}
	return c
}

// AddItem appends a line, or merges into an existing line with the same
// product+variant key by summing quantities. The existing line's
// snapshot wins on merge. Position of a merged line does not change.
func (c *Cart) AddItem(product ProductSnapshot, variant *VariantSnapshot, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	line := LineItem{Product: product, Variant: variant, Quantity: quantity}
	key := line.Key()
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items[i].Quantity += quantity
			return nil
		}
	}
	c.items = append(c.items, line)
	return nil
}

// RemoveItem drops the line with the given key. Removing a missing key
// is a no-op.
func (c *Cart) RemoveItem(key string) {
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the line with the given key.
// A quantity at or below zero removes the line. Updating a missing key
// is a no-op.
func (c *Cart) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(key)
		return
	}
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear removes every line. The pricing mode is untouched.
func (c *Cart) Clear() {
	c.items = nil
}

// SetWholesale flips the pricing mode.
func (c *Cart) SetWholesale(on bool) {
	c.wholesale = on
}

// Wholesale reports the pricing mode.
func (c *Cart) Wholesale() bool {
	return c.wholesale
}

// Items returns the lines in insertion order. The slice is a copy.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// ItemCount sums quantities across all lines. Independent of the
// pricing mode.
func (c *Cart) ItemCount() int {
	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// Total sums line subtotals under the current pricing mode.
func (c *Cart) Total() models.Money {
	sum := decimal.Zero
	for i := range c.items {
		sum = sum.Add(c.items[i].Subtotal(c.wholesale).Decimal)
	}
	return models.NewMoneyFromDecimal(sum)
}
