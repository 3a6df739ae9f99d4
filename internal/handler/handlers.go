package handler

import (
	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/handler/grpc"
	"github.com/Deadmanswitch/encryption/internal/handler/http"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/service"
)

// Handlers aggregates the transport handlers of the vault server. A nil
// field means the corresponding transport is disabled by configuration.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. At least one
// transport address must be configured.
func NewHandlers(services *service.Services, cfg config.Server, hashKey string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, hashKey, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
