package public

import (
	"errors"

	"github.com/grocer-next/internal/cart"
	"github.com/grocer-next/internal/http/response"
	"github.com/grocer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is the add-to-cart request body.
type AddCartItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest is the quantity-change request body.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// SetWholesaleRequest is the pricing-mode toggle request body.
type SetWholesaleRequest struct {
	Wholesale *bool `json:"wholesale" binding:"required"`
}

// GetCart returns the signed-in user's cart.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem adds a product line to the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	view, err := h.CartService.AddItem(c.Request.Context(), uid, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "quantity must be positive", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "product not available", nil)
		case errors.Is(err, service.ErrVariantMismatch):
			respondError(c, response.CodeBadRequest, "variant does not belong to product", nil)
		default:
			respondError(c, response.CodeInternal, "cart update failed", err)
		}
		return
	}
	response.Success(c, view)
}

// UpdateCartItem sets a line's quantity; zero or less removes it.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	key := c.Param("key")
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	view, err := h.CartService.UpdateQuantity(c.Request.Context(), uid, key, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "invalid cart line key", nil)
			return
		}
		respondError(c, response.CodeInternal, "cart update failed", err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem drops a line from the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.RemoveItem(c.Request.Context(), uid, c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "invalid cart line key", nil)
			return
		}
		respondError(c, response.CodeInternal, "cart update failed", err)
		return
	}
	response.Success(c, view)
}

// ClearCart empties the cart; the pricing mode stays.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.Clear(c.Request.Context(), uid)
	if err != nil {
		respondError(c, response.CodeInternal, "cart update failed", err)
		return
	}
	response.Success(c, view)
}

// SetWholesale flips the cart between retail and wholesale pricing.
func (h *Handler) SetWholesale(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req SetWholesaleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Wholesale == nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	view, err := h.CartService.SetWholesale(c.Request.Context(), uid, *req.Wholesale)
	if err != nil {
		respondError(c, response.CodeInternal, "cart update failed", err)
		return
	}
	response.Success(c, view)
}
