// SPDX-License-Identifier: Apache-2.0

// Package crypto implements the portable password-based encryption protocol
// shared by the client and server binaries: PBKDF2-HMAC-SHA256 key and
// fingerprint derivation plus AES-256-CBC streaming encryption, with the
// 16-byte salt reused as the cipher IV so that only one random value has to
// be stored per protected item.
//
// Every service in this package is built over an injected [Provider] rather
// than ambient process-wide state, so independent calls may run concurrently
// and tests can substitute a crippled provider to exercise failure paths.
package crypto

import (
	"encoding/base64"
	"fmt"
)

// Protocol constants. These are fixed across every environment that speaks
// the scheme; any change breaks compatibility with previously written data.
const (
	// SaltSize is the salt/IV length in raw bytes.
	SaltSize = 16

	// KeySize is the derived key and fingerprint length in raw bytes.
	KeySize = 32

	// Iterations is the PBKDF2 iteration count.
	Iterations = 100_000
)

// keyBoxService is the private implementation of [KeyBoxService].
type keyBoxService struct {
	provider Provider
}

// NewKeyBoxService constructs a [KeyBoxService] over the given provider.
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewKeyBoxService(provider Provider) KeyBoxService {
	return &keyBoxService{provider: provider}
}

// GenerateSalt implements [KeyBoxService]. It reads 16 bytes from the
// provider's CSPRNG and returns them base64-encoded. A failing random source
// is a hard error; there is no retry and no low-entropy fallback.
func (k *keyBoxService) GenerateSalt() (string, error) {
	salt, err := k.provider.RandomBytes(SaltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKey implements [KeyBoxService]. The salt text is decoded to its raw
// 16 bytes before derivation; the derived 32 bytes are re-encoded for
// interchange.
func (k *keyBoxService) DeriveKey(password, salt string) (string, error) {
	rawSalt, err := decodeSalt(salt)
	if err != nil {
		return "", err
	}

	key, err := k.provider.PBKDF2([]byte(password), rawSalt, Iterations, KeySize)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(key), nil
}

// Fingerprint implements [KeyBoxService] as DeriveKey(DeriveKey(password,
// salt), salt). The first pass yields the sensitive key, which is never
// persisted; the second pass, fed the first pass's textual output as its
// password, yields a value that is safe to store and cannot be walked back
// to the key without brute-forcing PBKDF2.
func (k *keyBoxService) Fingerprint(password, salt string) (string, error) {
	intermediate, err := k.DeriveKey(password, salt)
	if err != nil {
		return "", err
	}
	return k.DeriveKey(intermediate, salt)
}

// decodeSalt decodes a base64 salt and checks the protocol length.
func decodeSalt(salt string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("%w: salt is not valid base64", ErrInvalidParameter)
	}
	if len(raw) != SaltSize {
		return nil, fmt.Errorf("%w: salt length %d, want %d", ErrInvalidParameter, len(raw), SaltSize)
	}
	return raw, nil
}

// decodeKey decodes a base64 key and checks the protocol length.
func decodeKey(key string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not valid base64", ErrInvalidParameter)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: key length %d, want %d", ErrInvalidParameter, len(raw), KeySize)
	}
	return raw, nil
}
