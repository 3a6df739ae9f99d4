// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// stdProvider is the native [Provider] backed by the Go standard library and
// golang.org/x/crypto. It is stateless and safe for concurrent use.
type stdProvider struct{}

// NewStdProvider returns the Provider used by both binaries in this
// repository. Separate runtimes with different primitive sources implement
// [Provider] themselves and inject that instead.
func NewStdProvider() Provider {
	return &stdProvider{}
}

// PBKDF2 implements [Provider] with PBKDF2-HMAC-SHA256.
func (p *stdProvider) PBKDF2(password, salt []byte, iterations, keyLen int) ([]byte, error) {
	if iterations <= 0 || keyLen <= 0 {
		return nil, fmt.Errorf("%w: iterations=%d keyLen=%d", ErrInvalidParameter, iterations, keyLen)
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, sha256.New), nil
}

// NewCBCEncrypter implements [Provider]. The key must be a valid AES key
// length and the IV must match the AES block size.
func (p *stdProvider) NewCBCEncrypter(key, iv []byte) (cipher.BlockMode, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv length %d", ErrInvalidParameter, len(iv))
	}
	return cipher.NewCBCEncrypter(block, iv), nil
}

// NewCBCDecrypter implements [Provider].
func (p *stdProvider) NewCBCDecrypter(key, iv []byte) (cipher.BlockMode, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv length %d", ErrInvalidParameter, len(iv))
	}
	return cipher.NewCBCDecrypter(block, iv), nil
}

// RandomBytes implements [Provider] by reading from the OS CSPRNG.
func (p *stdProvider) RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("random source unavailable: %w", err)
	}
	return buf, nil
}
