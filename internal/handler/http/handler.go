package http

import (
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/service"
)

// Handler is the root HTTP transport handler. It holds the service layer,
// the transport integrity key, and the base logger used by middleware to
// spawn request-scoped children.
type Handler struct {
	services *service.Services

	// hashKey is the shared HMAC key for the chunk-upload integrity check.
	// Empty disables the check.
	hashKey string

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler.
func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hashKey:  hashKey,
		logger:   logger,
	}
}
