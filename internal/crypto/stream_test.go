package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"math/rand"
	"testing"
)

// testKey returns a fixed, deterministic 32-byte key in base64.
func testKey() string {
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, KeySize))
}

func encryptAll(t *testing.T, svc StreamCipherService, key, salt string, plaintext []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := svc.Encrypt(key, salt, plaintext, func(chunk []byte) error {
		out.Write(chunk)
		return nil
	}); err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	return out.Bytes()
}

func decryptAll(svc StreamCipherService, key, salt string, ciphertext []byte) ([]byte, error) {
	var out bytes.Buffer
	err := svc.Decrypt(key, salt, ciphertext, func(chunk []byte) error {
		out.Write(chunk)
		return nil
	})
	return out.Bytes(), err
}

func TestStreamCipher_RoundTrip(t *testing.T) {
	svc := NewStreamCipherService(NewStdProvider())
	key := testKey()

	big := make([]byte, 100_000)
	rand.New(rand.NewSource(1)).Read(big)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty payload", []byte{}},
		{"short text", []byte("hello world")},
		{"exactly one block", bytes.Repeat([]byte{0xAA}, 16)},
		{"one byte under a block", bytes.Repeat([]byte{0xBB}, 15)},
		{"one byte over a block", bytes.Repeat([]byte{0xCC}, 17)},
		{"many blocks", big},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ct := encryptAll(t, svc, key, zeroSalt, tc.plaintext)

			// Length: plaintext rounded up to the block size, plus a whole
			// padding block for block-aligned input.
			wantLen := (len(tc.plaintext)/16 + 1) * 16
			if len(ct) != wantLen {
				t.Fatalf("ciphertext length = %d, want %d", len(ct), wantLen)
			}

			pt, err := decryptAll(svc, key, zeroSalt, ct)
			if err != nil {
				t.Fatalf("Decrypt error: %v", err)
			}
			if !bytes.Equal(pt, tc.plaintext) {
				t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(pt), len(tc.plaintext))
			}
		})
	}
}

func TestStreamCipher_EmissionOrderAndChunking(t *testing.T) {
	svc := NewStreamCipherService(NewStdProvider())
	key := testKey()

	plaintext := make([]byte, 10_000)
	rand.New(rand.NewSource(2)).Read(plaintext)

	var chunks [][]byte
	if err := svc.Encrypt(key, zeroSalt, plaintext, func(chunk []byte) error {
		chunks = append(chunks, chunk)
		return nil
	}); err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple emissions for a 10k payload, got %d", len(chunks))
	}
	if len(chunks[len(chunks)-1]) != 16 {
		t.Fatalf("closing emission length = %d, want 16", len(chunks[len(chunks)-1]))
	}

	// Concatenated emissions must decrypt as a whole.
	var ct bytes.Buffer
	for _, c := range chunks {
		ct.Write(c)
	}
	pt, err := decryptAll(svc, key, zeroSalt, ct.Bytes())
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Fatal("reassembled emissions do not round trip")
	}
}

func TestStreamCipher_EmitErrorAbortsEncrypt(t *testing.T) {
	svc := NewStreamCipherService(NewStdProvider())
	sinkErr := errors.New("sink closed")

	err := svc.Encrypt(testKey(), zeroSalt, make([]byte, 8192), func([]byte) error {
		return sinkErr
	})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error to surface, got %v", err)
	}
}

func TestStreamCipher_TamperedFinalBlock(t *testing.T) {
	svc := NewStreamCipherService(NewStdProvider())
	key := testKey()

	ct := encryptAll(t, svc, key, zeroSalt, []byte("payload worth protecting"))

	// Flip one byte in the final block; padding validation must reject it.
	ct[len(ct)-1] ^= 0x01

	if _, err := decryptAll(svc, key, zeroSalt, ct); !errors.Is(err, ErrCorruptCiphertext) {
		t.Fatalf("expected ErrCorruptCiphertext, got %v", err)
	}
}

func TestStreamCipher_TruncatedCiphertext(t *testing.T) {
	svc := NewStreamCipherService(NewStdProvider())
	key := testKey()

	tests := []struct {
		name       string
		ciphertext []byte
	}{
		{"empty", nil},
		{"not block aligned", make([]byte, 20)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decryptAll(svc, key, zeroSalt, tc.ciphertext); !errors.Is(err, ErrCorruptCiphertext) {
				t.Fatalf("expected ErrCorruptCiphertext, got %v", err)
			}
		})
	}
}

func TestStreamCipher_WrongKeyNeverCrashes(t *testing.T) {
	provider := NewStdProvider()
	cipherSvc := NewStreamCipherService(provider)
	keys := NewKeyBoxService(provider)

	salt, err := keys.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	rightKey, err := keys.DeriveKey("right password", salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	wrongKey, err := keys.DeriveKey("wrong password", salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	plaintext := []byte("the original payload, several blocks long to be safe")
	ct := encryptAll(t, cipherSvc, rightKey, salt, plaintext)

	pt, err := decryptAll(cipherSvc, wrongKey, salt, ct)
	if err == nil && bytes.Equal(pt, plaintext) {
		t.Fatal("wrong key reproduced the original plaintext")
	}
	if err != nil && !errors.Is(err, ErrCorruptCiphertext) {
		t.Fatalf("wrong key produced unexpected error kind: %v", err)
	}
}

func TestStreamCipher_InvalidParameters(t *testing.T) {
	svc := NewStreamCipherService(NewStdProvider())

	shortKey := base64.StdEncoding.EncodeToString([]byte("too short"))

	tests := []struct {
		name string
		key  string
		salt string
	}{
		{"malformed key", "not base64 at all!", zeroSalt},
		{"short key", shortKey, zeroSalt},
		{"malformed salt", testKey(), "not base64 at all!"},
		{"short salt", testKey(), base64.StdEncoding.EncodeToString([]byte("tiny"))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Encrypt(tc.key, tc.salt, []byte("x"), func([]byte) error { return nil })
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Encrypt: expected ErrInvalidParameter, got %v", err)
			}
			err = svc.Decrypt(tc.key, tc.salt, make([]byte, 16), func([]byte) error { return nil })
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Decrypt: expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestStreamCipher_UnsupportedProviderFailsFast(t *testing.T) {
	svc := NewStreamCipherService(brokenProvider{})

	called := false
	err := svc.Encrypt(testKey(), zeroSalt, []byte("payload"), func([]byte) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCapabilityUnsupported) {
		t.Fatalf("expected ErrCapabilityUnsupported, got %v", err)
	}
	if called {
		t.Fatal("emit must not be called when the cipher primitive is unavailable")
	}
}

func TestStreamCipher_TextRoundTrip(t *testing.T) {
	svc := NewStreamCipherService(NewStdProvider())
	key := testKey()

	ct, err := svc.EncryptText(key, zeroSalt, "hello world")
	if err != nil {
		t.Fatalf("EncryptText error: %v", err)
	}
	if _, err := base64.StdEncoding.DecodeString(ct); err != nil {
		t.Fatalf("ciphertext text is not valid base64: %v", err)
	}

	pt, err := svc.DecryptText(key, zeroSalt, ct)
	if err != nil {
		t.Fatalf("DecryptText error: %v", err)
	}
	if pt != "hello world" {
		t.Fatalf("DecryptText = %q, want %q", pt, "hello world")
	}

	if _, err := svc.DecryptText(key, zeroSalt, "!!! not base64 !!!"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for malformed ciphertext text, got %v", err)
	}
}

func TestPKCS7Unpad_RejectsBadPadding(t *testing.T) {
	tests := []struct {
		name  string
		block []byte
	}{
		{"zero padding byte", append(bytes.Repeat([]byte{0x00}, 15), 0x00)},
		{"padding byte too large", append(bytes.Repeat([]byte{0x00}, 15), 0x11)},
		{"inconsistent padding", append(bytes.Repeat([]byte{0x03}, 14), 0x02, 0x03)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := pkcs7Unpad(tc.block); !errors.Is(err, ErrCorruptCiphertext) {
				t.Fatalf("expected ErrCorruptCiphertext, got %v", err)
			}
		})
	}
}

func TestPKCS7_PadUnpadRoundTrip(t *testing.T) {
	for n := 0; n < 16; n++ {
		tail := bytes.Repeat([]byte{0x7F}, n)
		got, err := pkcs7Unpad(pkcs7Pad(tail))
		if err != nil {
			t.Fatalf("tail length %d: unpad error: %v", n, err)
		}
		if !bytes.Equal(got, tail) {
			t.Fatalf("tail length %d: round trip mismatch", n)
		}
	}
}
