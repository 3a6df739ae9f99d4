package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Deadmanswitch/encryption/internal/adapter"
	"github.com/Deadmanswitch/encryption/internal/crypto"
	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/models"
)

// clientAuthService implements ClientAuthService over the server adapter and
// the local key box.
type clientAuthService struct {
	serverAdapter adapter.ServerAdapter
	keyBox        crypto.KeyBoxService
	logger        *logger.Logger
}

// NewClientAuthService constructs a ClientAuthService.
func NewClientAuthService(serverAdapter adapter.ServerAdapter, keyBox crypto.KeyBoxService, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		serverAdapter: serverAdapter,
		keyBox:        keyBox,
		logger:        logger,
	}
}

// Register creates a new account. The submitted user carries only public
// material: login, display name, the freshly generated account salt, and the
// password fingerprint derived under it.
func (c *clientAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	salt, err := generateSalt(ctx, c.keyBox, c.serverAdapter)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("account salt generation failed")
		return models.User{}, fmt.Errorf("account salt generation failed: %w", err)
	}

	fingerprint, err := c.keyBox.Fingerprint(user.Password, salt)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("fingerprint derivation failed")
		return models.User{}, fmt.Errorf("fingerprint derivation failed: %w", err)
	}

	registered, err := c.serverAdapter.Register(ctx, models.User{
		Login:       user.Login,
		Name:        user.Name,
		Salt:        salt,
		Fingerprint: fingerprint,
	})
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("registration request failed")
		return models.User{}, fmt.Errorf("registration request failed: %w", err)
	}

	return registered, nil
}

// Login authenticates the user. The account salt is fetched first so the
// fingerprint can be re-derived from the password; only the fingerprint is
// transmitted.
func (c *clientAuthService) Login(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	params, err := c.serverAdapter.AccountParams(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("account params request failed")
		return models.Token{}, fmt.Errorf("account params request failed: %w", err)
	}

	fingerprint, err := c.keyBox.Fingerprint(user.Password, params.Salt)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("fingerprint derivation failed")
		return models.Token{}, fmt.Errorf("fingerprint derivation failed: %w", err)
	}

	token, err := c.serverAdapter.Login(ctx, models.User{
		Login:       user.Login,
		Fingerprint: fingerprint,
	})
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("login request failed")
		return models.Token{}, fmt.Errorf("login request failed: %w", err)
	}

	return token, nil
}

// generateSalt produces a protocol salt locally, falling back to the
// server's salt endpoint when the local runtime has no random source. Both
// paths yield a salt of the exact same shape.
func generateSalt(ctx context.Context, keyBox crypto.KeyBoxService, serverAdapter adapter.ServerAdapter) (string, error) {
	salt, err := keyBox.GenerateSalt()
	if err == nil {
		return salt, nil
	}

	if !errors.Is(err, crypto.ErrCapabilityUnsupported) {
		return "", err
	}

	return serverAdapter.GenerateSalt(ctx)
}
