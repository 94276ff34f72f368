package admin

import (
	"errors"

	"github.com/grocer-next/internal/http/response"
	"github.com/grocer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the category create/update request body.
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	ImageURL  string `json:"image_url"`
	SortOrder int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:      r.Name,
		ImageURL:  r.ImageURL,
		SortOrder: r.SortOrder,
	}
}

// ListCategories lists every category for the console.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid category details", nil)
		case errors.Is(err, service.ErrCategoryNameTaken):
			respondError(c, response.CodeBadRequest, "category name already in use", nil)
		default:
			respondError(c, response.CodeInternal, "category creation failed", err)
		}
		return
	}
	response.Success(c, category)
}

// UpdateCategory rewrites a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id", "category")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid category details", nil)
		case errors.Is(err, service.ErrCategoryNameTaken):
			respondError(c, response.CodeBadRequest, "category name already in use", nil)
		default:
			respondError(c, response.CodeInternal, "category update failed", err)
		}
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes an empty category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id", "category")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeBadRequest, "category still has products", nil)
		default:
			respondError(c, response.CodeInternal, "category deletion failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
