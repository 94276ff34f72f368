package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/grocer-next/internal/http/response"
	"github.com/grocer-next/internal/repository"
	"github.com/grocer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RequestStatusRequest is the status-change request body.
type RequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListRequests lists custom product requests across all users.
func (h *Handler) ListRequests(c *gin.Context) {
	page, pageSize := queryPagination(c)

	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid user id", nil)
			return
		}
		userID = uint(id)
	}

	requests, total, err := h.RequestService.ListAdmin(repository.RequestListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "request fetch failed", err)
		return
	}
	response.SuccessWithPage(c, requests, buildPagination(page, pageSize, total))
}

// UpdateRequestStatus moves a custom request through review.
func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "request")
	if !ok {
		return
	}
	var req RequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	request, err := h.RequestService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "request not found", nil)
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, response.CodeBadRequest, "invalid status", nil)
		default:
			respondError(c, response.CodeInternal, "request update failed", err)
		}
		return
	}
	response.Success(c, request)
}
