package public

import (
	"errors"

	"github.com/grocer-next/internal/cart"
	"github.com/grocer-next/internal/http/response"
	"github.com/grocer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// QuickAddLineRequest is one row of a quick-add batch.
type QuickAddLineRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	Brand    string `json:"brand"`
}

// QuickAddRequest is the batched quick-add body, shared by the lookup
// and the match-and-add endpoints.
type QuickAddRequest struct {
	Items []QuickAddLineRequest `json:"items" binding:"required,min=1,dive"`
}

func (r QuickAddRequest) toLines() []service.QuickAddLine {
	lines := make([]service.QuickAddLine, 0, len(r.Items))
	for _, item := range r.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		lines = append(lines, service.QuickAddLine{
			Name:     item.Name,
			Quantity: quantity,
			Brand:    item.Brand,
		})
	}
	return lines
}

// QuickAddMatch resolves a batch of free-text item lines to catalog
// candidates, one verdict per line.
func (h *Handler) QuickAddMatch(c *gin.Context) {
	var req QuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	results, err := h.QuickAddService.Match(c.Request.Context(), req.toLines())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "at least one item name required", nil)
			return
		}
		respondError(c, response.CodeInternal, "quick add lookup failed", err)
		return
	}

	response.Success(c, gin.H{"results": results})
}

// QuickAdd resolves a batch of lines and drops every matched line's
// top candidate into the cart.
func (h *Handler) QuickAdd(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req QuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.QuickAddService.Add(c.Request.Context(), uid, req.toLines())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "item names and positive quantities required", nil)
		case errors.Is(err, cart.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "quantity must be positive", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "product not available", nil)
		default:
			respondError(c, response.CodeInternal, "quick add failed", err)
		}
		return
	}

	response.Success(c, result)
}
