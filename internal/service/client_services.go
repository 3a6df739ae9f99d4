package service

import (
	"github.com/Deadmanswitch/encryption/internal/adapter"
	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	ProtectService ClientProtectService
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, provider crypto.Provider, logger *logger.Logger) *ClientServices {
	keyBox := crypto.NewKeyBoxService(provider)
	streamCipher := crypto.NewStreamCipherService(provider)

	return &ClientServices{
		AuthService:    NewClientAuthService(serverAdapter, keyBox, logger),
		ProtectService: NewClientProtectService(serverAdapter, storages.OutboxRepository, keyBox, streamCipher, logger),
	}
}
