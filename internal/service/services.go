package service

import (
	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/store"
)

type Services struct {
	AuthService  AuthService
	VaultService VaultService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, provider crypto.Provider, logger *logger.Logger) *Services {
	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, cfg.Auth, logger),
		VaultService: NewVaultService(storages.ItemRepository, crypto.NewKeyBoxService(provider), logger),
	}
}
