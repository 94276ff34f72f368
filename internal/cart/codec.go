package cart

import (
	"encoding/json"

	"github.com/grocer-next/internal/logger"
)

// decodeItems parses the items slot. Malformed state is discarded, not
// surfaced: the owner simply starts over with an empty cart. A payload
// that parses but carries semantically broken lines (no product id, or
// a quantity below one) has those lines dropped the same way, so a
// hydrated cart never holds a line the mutators would have refused.
func decodeItems(owner, payload string) ([]LineItem, bool) {
	var items []LineItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		logger.Warnw("cart_items_state_discarded", "owner", owner, "error", err)
		return nil, false
	}
	valid := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Product.ProductID == 0 || item.Quantity <= 0 {
			continue
		}
		valid = append(valid, item)
	}
	if dropped := len(items) - len(valid); dropped > 0 {
		logger.Warnw("cart_items_state_discarded", "owner", owner, "dropped_lines", dropped)
	}
	return valid, true
}

// decodeWholesale parses the pricing-mode slot, stored as "true"/"false".
func decodeWholesale(owner, payload string) (bool, bool) {
	switch payload {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		logger.Warnw("cart_wholesale_state_discarded", "owner", owner, "value", payload)
		return false, false
	}
}

func encodeItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func encodeWholesale(on bool) string {
	if on {
		return "true"
	}
	return "false"
}
