package main

import (
	"context"
	"fmt"

	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/handler"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/server"
	"github.com/Deadmanswitch/encryption/internal/service"
	"github.com/Deadmanswitch/encryption/internal/store"
	"github.com/Deadmanswitch/encryption/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	utils.InitHasherPool(cfg.Auth.HashKey)

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(*storages, *cfg, crypto.NewStdProvider(), log)

	handlers, err := handler.NewHandlers(services, cfg.Server, cfg.Auth.HashKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
