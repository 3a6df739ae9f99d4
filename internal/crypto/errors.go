package crypto

import "errors"

// Sentinel errors returned by the crypto services. Callers should match with
// [errors.Is]; error text never contains passwords or key material.
var (
	// ErrCapabilityUnsupported is returned when the injected Provider lacks
	// a primitive an operation needs. Retrying cannot succeed; the caller
	// must supply a different provider or abort.
	ErrCapabilityUnsupported = errors.New("cryptographic capability is not supported by provider")

	// ErrInvalidParameter is returned for malformed base64 input or a
	// decoded key/salt of the wrong length, before any primitive is invoked.
	ErrInvalidParameter = errors.New("invalid cryptographic parameter")

	// ErrCorruptCiphertext is returned when padding validation fails during
	// decryption. The message deliberately does not distinguish corrupted
	// data from a wrong key.
	ErrCorruptCiphertext = errors.New("corrupt ciphertext or wrong key")
)
