package admin

import "github.com/grocer-next/internal/provider"

// Handler serves the management console API. Routes mounting it must
// sit behind the admin role middleware.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
