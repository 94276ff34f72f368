package admin

import (
	"strings"

	"github.com/grocer-next/internal/http/response"
	"github.com/grocer-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListUsers lists accounts for the console.
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := queryPagination(c)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}
	response.SuccessWithPage(c, users, buildPagination(page, pageSize, total))
}
