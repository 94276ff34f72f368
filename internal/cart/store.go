package cart

import "context"

// Store persists cart state per owner across two slots: the line items
// as JSON and the pricing mode as a "true"/"false" string. Writes are
// synchronous; a load that finds nothing reports found=false.
type Store interface {
	LoadItems(ctx context.Context, owner string) (items []LineItem, found bool, err error)
	SaveItems(ctx context.Context, owner string, items []LineItem) error
	LoadWholesale(ctx context.Context, owner string) (on bool, found bool, err error)
	SaveWholesale(ctx context.Context, owner string, on bool) error
	Clear(ctx context.Context, owner string) error
}

// Load rebuilds a cart for owner from the store. Missing or malformed
// slots fall back to the empty value; the store logs the discard.
func Load(ctx context.Context, store Store, owner string) (*Cart, error) {
	items, found, err := store.LoadItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !found {
		items = nil
	}
	wholesale, found, err := store.LoadWholesale(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !found {
		wholesale = false
	}
	return Restore(items, wholesale), nil
}

// SaveItems writes the cart's lines through to the store.
func SaveItems(ctx context.Context, store Store, owner string, c *Cart) error {
	return store.SaveItems(ctx, owner, c.Items())
}

// SaveWholesale writes the cart's pricing mode through to the store.
func SaveWholesale(ctx context.Context, store Store, owner string, c *Cart) error {
	return store.SaveWholesale(ctx, owner, c.Wholesale())
}
