package admin

import "github.com/tawseel-next/internal/provider"

// Handler staff back-office API
type Handler struct {
	*provider.Container
}

// New creates the back-office handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
