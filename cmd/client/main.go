package main

import (
	"fmt"

	"github.com/Deadmanswitch/encryption/internal/adapter"
	"github.com/Deadmanswitch/encryption/internal/client"
	"github.com/Deadmanswitch/encryption/internal/config"
	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/service"
	"github.com/Deadmanswitch/encryption/internal/store"
	"github.com/Deadmanswitch/encryption/internal/tui"
	"github.com/Deadmanswitch/encryption/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("vault-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.HashKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(localStorage, serverAdapter, crypto.NewStdProvider(), log)
	ui := tui.New(services, log)
	uploadWorkers := workers.NewWorkers(localStorage, serverAdapter, cfg.Workers, log)

	app := client.NewApp(ui, uploadWorkers, log)
	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
