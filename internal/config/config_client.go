package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v11"
)

// ClientConfig is the configuration container for the vault client binary.
// Populated from environment variables first, then overridden by flags.
type ClientConfig struct {
	// Adapter holds settings for the HTTP connection to the vault server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local outbox database settings.
	Storage ClientStorage `envPrefix:"STORAGE_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// HashKey is the shared HMAC key for chunk-upload integrity headers.
	// Must match the server's AUTH_HASH_KEY.
	// Env: CLIENT_HASH_KEY
	HashKey string `env:"CLIENT_HASH_KEY"`
}

// Adapter holds settings for the client's connection to the vault server.
type Adapter struct {
	// HTTPAddress is the base URL of the vault server.
	// Env: ADAPTER_SERVER_URL
	HTTPAddress string `env:"SERVER_URL"`

	// RequestTimeout bounds a single outbound request. Env: ADAPTER_TIMEOUT
	RequestTimeout time.Duration `env:"TIMEOUT"`
}

// ClientStorage holds the local sqlite settings of the client.
type ClientStorage struct {
	// DB holds the sqlite file path of the upload outbox.
	DB ClientDB `envPrefix:"DB_"`
}

// ClientDB holds the sqlite connection settings.
type ClientDB struct {
	// DSN is the path of the sqlite database file.
	// Env: STORAGE_DB_PATH
	DSN string `env:"PATH"`
}

// Workers holds background worker settings of the client.
type Workers struct {
	// UploadInterval is how often the upload worker drains the outbox.
	// Env: WORKERS_UPLOAD_INTERVAL
	UploadInterval time.Duration `env:"UPLOAD_INTERVAL"`
}

// GetClientConfig builds the client configuration from environment
// variables and command-line flags, applies defaults for anything left
// unset, and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	var serverURL, dbPath, hashKey string
	var timeout, uploadInterval time.Duration
	flag.StringVar(&serverURL, "server-url", "", "Vault server base URL")
	flag.StringVar(&dbPath, "db", "", "Local outbox database path")
	flag.StringVar(&hashKey, "hash-key", "", "Transport integrity hash key")
	flag.DurationVar(&timeout, "timeout", 0, "Request timeout (e.g. 15s)")
	flag.DurationVar(&uploadInterval, "upload-interval", 0, "Outbox upload interval (e.g. 30s)")
	flag.Parse()

	if serverURL != "" {
		cfg.Adapter.HTTPAddress = serverURL
	}
	if dbPath != "" {
		cfg.Storage.DB.DSN = dbPath
	}
	if hashKey != "" {
		cfg.HashKey = hashKey
	}
	if timeout != 0 {
		cfg.Adapter.RequestTimeout = timeout
	}
	if uploadInterval != 0 {
		cfg.Workers.UploadInterval = uploadInterval
	}

	cfg.applyDefaults()

	return cfg, cfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = "http://localhost:8080"
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = "vault-client.db"
	}
	if cfg.Workers.UploadInterval == 0 {
		cfg.Workers.UploadInterval = 30 * time.Second
	}
}
