package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/grocer-next/internal/http/response"
	"github.com/grocer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateRequestRequest is the custom product request body.
type CreateRequestRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	Brand    string `json:"brand"`
	Notes    string `json:"notes"`
}

// CreateRequest files a custom product request.
func (h *Handler) CreateRequest(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	request, err := h.RequestService.Create(uid, service.CreateRequestInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Brand:    req.Brand,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) || errors.Is(err, service.ErrInvalidRequest) {
			respondError(c, response.CodeBadRequest, "invalid request details", nil)
			return
		}
		respondError(c, response.CodeInternal, "request creation failed", err)
		return
	}

	response.Success(c, request)
}

// GetRequests lists the signed-in user's custom requests.
func (h *Handler) GetRequests(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	status := strings.TrimSpace(c.Query("status"))

	requests, total, err := h.RequestService.ListForUser(uid, status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "request fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, requests, pagination)
}

// GetRequest returns one of the signed-in user's custom requests.
func (h *Handler) GetRequest(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid request id", nil)
		return
	}

	request, err := h.RequestService.GetForUser(uid, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "request not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "request fetch failed", err)
		return
	}

	response.Success(c, request)
}
