package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/grocer-next/internal/http/response"
	"github.com/grocer-next/internal/repository"
	"github.com/grocer-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest is the product create/update request body.
type ProductRequest struct {
	CategoryID         uint            `json:"category_id" binding:"required"`
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	RetailPrice        decimal.Decimal `json:"retail_price"`
	WholesalePrice     decimal.Decimal `json:"wholesale_price"`
	WholesaleAvailable bool            `json:"wholesale_available"`
	Stock              int             `json:"stock"`
	ImageURL           string          `json:"image_url"`
	Unit               string          `json:"unit"`
	IsActive           *bool           `json:"is_active"`
	SortOrder          int             `json:"sort_order"`
}

// VariantRequest is the variant create/update request body.
type VariantRequest struct {
	Name            string          `json:"name" binding:"required"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	Stock           *int            `json:"stock"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:         r.CategoryID,
		Name:               r.Name,
		Description:        r.Description,
		RetailPrice:        r.RetailPrice,
		WholesalePrice:     r.WholesalePrice,
		WholesaleAvailable: r.WholesaleAvailable,
		Stock:              r.Stock,
		ImageURL:           r.ImageURL,
		Unit:               r.Unit,
		IsActive:           r.IsActive,
		SortOrder:          r.SortOrder,
	}
}

func (r VariantRequest) toInput() service.VariantInput {
	return service.VariantInput{
		Name:            r.Name,
		PriceAdjustment: r.PriceAdjustment,
		Stock:           r.Stock,
	}
}

// ListProducts lists products for the console, inactive ones included.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := queryPagination(c)

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid category id", nil)
			return
		}
		categoryID = uint(id)
	}

	products, total, err := h.ProductService.ListAdmin(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct returns one product regardless of its active flag.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.ProductService.GetAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a catalog product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid product details", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "category not found", nil)
		default:
			respondError(c, response.CodeInternal, "product creation failed", err)
		}
		return
	}
	response.Success(c, product)
}

// UpdateProduct rewrites a catalog product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid product details", nil)
		default:
			respondError(c, response.CodeInternal, "product update failed", err)
		}
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product and its variants.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product deletion failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateVariant adds a variant under a product.
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	variant, err := h.ProductService.CreateVariant(productID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid variant details", nil)
		default:
			respondError(c, response.CodeInternal, "variant creation failed", err)
		}
		return
	}
	response.Success(c, variant)
}

// UpdateVariant rewrites a variant, checking it belongs to the product.
func (h *Handler) UpdateVariant(c *gin.Context) {
	productID, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	variantID, ok := paramID(c, "variant_id", "variant")
	if !ok {
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	variant, err := h.ProductService.UpdateVariant(productID, variantID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "variant not found", nil)
		case errors.Is(err, service.ErrVariantMismatch):
			respondError(c, response.CodeBadRequest, "variant does not belong to product", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid variant details", nil)
		default:
			respondError(c, response.CodeInternal, "variant update failed", err)
		}
		return
	}
	response.Success(c, variant)
}

// DeleteVariant removes a variant, checking it belongs to the product.
func (h *Handler) DeleteVariant(c *gin.Context) {
	productID, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	variantID, ok := paramID(c, "variant_id", "variant")
	if !ok {
		return
	}

	if err := h.ProductService.DeleteVariant(productID, variantID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "variant not found", nil)
		case errors.Is(err, service.ErrVariantMismatch):
			respondError(c, response.CodeBadRequest, "variant does not belong to product", nil)
		default:
			respondError(c, response.CodeInternal, "variant deletion failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
