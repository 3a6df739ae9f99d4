package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

import "crypto/cipher"

// Provider is the capability handle to the underlying cryptographic
// primitives. Each binary constructs exactly one Provider at startup and
// injects it into the services built on top of it; there is no ambient
// global crypto state.
//
// A Provider must be safe for concurrent use: every method either returns a
// fresh object (cipher modes) or is a pure function of its inputs.
type Provider interface {
	// PBKDF2 derives keyLen bytes from password and salt using
	// PBKDF2-HMAC-SHA256 with the given iteration count.
	// Returns ErrCapabilityUnsupported if the runtime lacks the primitive.
	PBKDF2(password, salt []byte, iterations, keyLen int) ([]byte, error)

	// NewCBCEncrypter returns a fresh AES-CBC encrypting block mode for the
	// given key and IV. The caller owns the returned mode; it carries the
	// chaining state of a single encryption pass and must not be shared.
	NewCBCEncrypter(key, iv []byte) (cipher.BlockMode, error)

	// NewCBCDecrypter is the decrypting counterpart of NewCBCEncrypter.
	NewCBCDecrypter(key, iv []byte) (cipher.BlockMode, error)

	// RandomBytes reads n bytes from a cryptographically secure random
	// source. An error here is fatal to the caller: proceeding without
	// real entropy breaks the security model.
	RandomBytes(n int) ([]byte, error)
}

// KeyBoxService derives keys and fingerprints from a password and a salt.
//
// All textual values are standard base64 with padding. The derivation
// parameters (PBKDF2-HMAC-SHA256, 100,000 iterations, 32-byte output) are
// protocol constants shared by every environment that speaks this scheme;
// changing any of them is a breaking protocol version bump.
type KeyBoxService interface {
	// GenerateSalt produces a fresh 16-byte salt from the provider's CSPRNG,
	// base64-encoded. The salt doubles as the cipher IV, so callers must
	// generate a new one per protected item.
	GenerateSalt() (string, error)

	// DeriveKey derives the 32-byte symmetric key for (password, salt) and
	// returns it base64-encoded. Deterministic: the same inputs always yield
	// the same key, bit for bit, in every environment.
	DeriveKey(password, salt string) (string, error)

	// Fingerprint derives a value safe to persist for (password, salt):
	// the key derivation applied twice, the first pass's textual output
	// serving as the second pass's password. Recovering the usable key from
	// a fingerprint requires inverting PBKDF2.
	Fingerprint(password, salt string) (string, error)
}

// EmitFunc receives output chunks from a streaming cipher operation.
// Chunks arrive in order; returning an error aborts the operation and the
// error is surfaced to the caller unchanged.
type EmitFunc func(chunk []byte) error

// StreamCipherService encrypts and decrypts byte payloads with AES-256-CBC,
// reusing the salt as the IV. Each call builds a fresh cipher context; no
// state persists between calls.
type StreamCipherService interface {
	// Encrypt enciphers plaintext under the base64 key and salt, delivering
	// raw ciphertext through emit in one or more chunks. The final emission
	// carries the PKCS#7-padded closing block.
	Encrypt(key, salt string, plaintext []byte, emit EmitFunc) error

	// Decrypt reverses Encrypt. The final emission carries the unpadded
	// tail; a padding check failure surfaces ErrCorruptCiphertext without
	// distinguishing a wrong key from corrupted data.
	Decrypt(key, salt string, ciphertext []byte, emit EmitFunc) error

	// EncryptText buffers a full Encrypt pass and returns the ciphertext as
	// a single base64 string, the form used on the wire and at rest.
	EncryptText(key, salt, plaintext string) (string, error)

	// DecryptText reverses EncryptText.
	DecryptText(key, salt, ciphertext string) (string, error)
}
