// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"bytes"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const (
	// blockSize is the AES block size in bytes.
	blockSize = 16

	// streamChunkSize is how many ciphertext/plaintext bytes are handed to
	// the emit callback per call. Block aligned; large payloads are walked
	// incrementally instead of transformed in one allocation.
	streamChunkSize = 4096
)

// streamCipherService is the private implementation of [StreamCipherService].
type streamCipherService struct {
	provider Provider
}

// NewStreamCipherService constructs a [StreamCipherService] over the given
// provider. Safe for concurrent use; every call builds its own cipher mode.
func NewStreamCipherService(provider Provider) StreamCipherService {
	return &streamCipherService{provider: provider}
}

// Encrypt implements [StreamCipherService].
//
// Full plaintext blocks are enciphered and emitted in streamChunkSize
// slices; the remaining tail (possibly empty) is PKCS#7-padded into exactly
// one closing block and emitted last. Total ciphertext length is therefore
// len(plaintext) rounded up to the next block boundary, plus a whole padding
// block when the plaintext is already block aligned.
func (s *streamCipherService) Encrypt(key, salt string, plaintext []byte, emit EmitFunc) error {
	rawKey, iv, err := s.decodeParams(key, salt)
	if err != nil {
		return err
	}

	mode, err := s.provider.NewCBCEncrypter(rawKey, iv)
	if err != nil {
		return fmt.Errorf("create cbc encrypter: %w", err)
	}

	full := len(plaintext) / blockSize * blockSize
	for off := 0; off < full; off += streamChunkSize {
		end := off + streamChunkSize
		if end > full {
			end = full
		}
		out := make([]byte, end-off)
		mode.CryptBlocks(out, plaintext[off:end])
		if err := emit(out); err != nil {
			return err
		}
	}

	closing := make([]byte, blockSize)
	mode.CryptBlocks(closing, pkcs7Pad(plaintext[full:]))
	return emit(closing)
}

// Decrypt implements [StreamCipherService].
//
// All blocks before the last are deciphered and emitted in streamChunkSize
// slices; the last block is deciphered separately so its padding can be
// validated before the unpadded tail is emitted. Any padding failure is
// reported as [ErrCorruptCiphertext].
func (s *streamCipherService) Decrypt(key, salt string, ciphertext []byte, emit EmitFunc) error {
	rawKey, iv, err := s.decodeParams(key, salt)
	if err != nil {
		return err
	}
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return fmt.Errorf("%w: ciphertext length %d", ErrCorruptCiphertext, len(ciphertext))
	}

	mode, err := s.provider.NewCBCDecrypter(rawKey, iv)
	if err != nil {
		return fmt.Errorf("create cbc decrypter: %w", err)
	}

	body := len(ciphertext) - blockSize
	for off := 0; off < body; off += streamChunkSize {
		end := off + streamChunkSize
		if end > body {
			end = body
		}
		out := make([]byte, end-off)
		mode.CryptBlocks(out, ciphertext[off:end])
		if err := emit(out); err != nil {
			return err
		}
	}

	closing := make([]byte, blockSize)
	mode.CryptBlocks(closing, ciphertext[body:])

	tail, err := pkcs7Unpad(closing)
	if err != nil {
		return err
	}
	return emit(tail)
}

// EncryptText implements [StreamCipherService]: one buffered Encrypt pass,
// base64-encoded for the wire.
func (s *streamCipherService) EncryptText(key, salt, plaintext string) (string, error) {
	var buf bytes.Buffer
	err := s.Encrypt(key, salt, []byte(plaintext), func(chunk []byte) error {
		buf.Write(chunk)
		return nil
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecryptText implements [StreamCipherService].
func (s *streamCipherService) DecryptText(key, salt, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not valid base64", ErrInvalidParameter)
	}

	var buf bytes.Buffer
	err = s.Decrypt(key, salt, raw, func(chunk []byte) error {
		buf.Write(chunk)
		return nil
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// decodeParams validates and decodes the textual key and salt. Both checks
// run before any primitive is touched.
func (s *streamCipherService) decodeParams(key, salt string) ([]byte, []byte, error) {
	rawKey, err := decodeKey(key)
	if err != nil {
		return nil, nil, err
	}
	iv, err := decodeSalt(salt)
	if err != nil {
		return nil, nil, err
	}
	return rawKey, iv, nil
}

// pkcs7Pad pads tail (shorter than one block) up to exactly one block.
func pkcs7Pad(tail []byte) []byte {
	n := blockSize - len(tail)
	padded := make([]byte, blockSize)
	copy(padded, tail)
	for i := len(tail); i < blockSize; i++ {
		padded[i] = byte(n)
	}
	return padded
}

// pkcs7Unpad validates and strips the padding of a deciphered final block.
// The byte comparison runs over the whole block regardless of where the
// first mismatch occurs, to avoid leaking the padding length through timing.
func pkcs7Unpad(block []byte) ([]byte, error) {
	n := int(block[len(block)-1])
	if n == 0 || n > blockSize {
		return nil, ErrCorruptCiphertext
	}

	good := 1
	for i := 0; i < blockSize; i++ {
		expected := block[i]
		if i >= blockSize-n {
			expected = byte(n)
		}
		good &= subtle.ConstantTimeByteEq(block[i], expected)
	}
	if good != 1 {
		return nil, ErrCorruptCiphertext
	}

	return block[:blockSize-n], nil
}
