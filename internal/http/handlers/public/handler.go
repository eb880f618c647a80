package public

import "github.com/tawseel-next/internal/provider"

// Handler unauthenticated API: login, captcha, health
type Handler struct {
	*provider.Container
}

// New creates the public handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
