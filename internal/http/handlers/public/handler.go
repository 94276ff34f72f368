package public

import "github.com/grocer-next/internal/provider"

// Handler serves the storefront API for guests and signed-in customers.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
