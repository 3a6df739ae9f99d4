package crypto

import (
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"testing"
)

// zeroSalt is 16 zero bytes in standard base64, the worked example salt
// shared with other implementations of the protocol.
const zeroSalt = "AAAAAAAAAAAAAAAAAAAAAA=="

// brokenProvider fails every capability. Used to verify that services fail
// fast instead of falling back to a weaker primitive.
type brokenProvider struct{}

func (brokenProvider) PBKDF2(_, _ []byte, _, _ int) ([]byte, error) {
	return nil, ErrCapabilityUnsupported
}

func (brokenProvider) NewCBCEncrypter(_, _ []byte) (cipher.BlockMode, error) {
	return nil, ErrCapabilityUnsupported
}

func (brokenProvider) NewCBCDecrypter(_, _ []byte) (cipher.BlockMode, error) {
	return nil, ErrCapabilityUnsupported
}

func (brokenProvider) RandomBytes(int) ([]byte, error) {
	return nil, errors.New("entropy exhausted")
}

func TestGenerateSalt_LengthAndUniqueness(t *testing.T) {
	svc := NewKeyBoxService(NewStdProvider())

	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		salt, err := svc.GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt error: %v", err)
		}

		raw, err := base64.StdEncoding.DecodeString(salt)
		if err != nil {
			t.Fatalf("salt is not valid base64: %v", err)
		}
		if len(raw) != SaltSize {
			t.Fatalf("salt length = %d, want %d", len(raw), SaltSize)
		}
		if seen[salt] {
			t.Fatalf("salt %q repeated", salt)
		}
		seen[salt] = true
	}
}

func TestGenerateSalt_RandomSourceFailureIsFatal(t *testing.T) {
	svc := NewKeyBoxService(brokenProvider{})

	if _, err := svc.GenerateSalt(); err == nil {
		t.Fatal("expected error when random source is unavailable")
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	svc := NewKeyBoxService(NewStdProvider())

	k1, err := svc.DeriveKey("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := svc.DeriveKey("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if k1 != k2 {
		t.Fatalf("expected identical keys, got %q and %q", k1, k2)
	}

	raw, err := base64.StdEncoding.DecodeString(k1)
	if err != nil {
		t.Fatalf("key is not valid base64: %v", err)
	}
	if len(raw) != KeySize {
		t.Fatalf("key length = %d, want %d", len(raw), KeySize)
	}
}

func TestDeriveKey_DifferentSaltsDifferentKeys(t *testing.T) {
	svc := NewKeyBoxService(NewStdProvider())

	saltA, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	saltB, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	kA, err := svc.DeriveKey("same password", saltA)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	kB, err := svc.DeriveKey("same password", saltB)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if kA == kB {
		t.Fatal("different salts produced the same key")
	}
}

func TestDeriveKey_InvalidSalt(t *testing.T) {
	svc := NewKeyBoxService(NewStdProvider())

	tests := []struct {
		name string
		salt string
	}{
		{"not base64", "%%% not base64 %%%"},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.DeriveKey("password", tc.salt); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestDeriveKey_UnsupportedProviderFailsFast(t *testing.T) {
	svc := NewKeyBoxService(brokenProvider{})

	if _, err := svc.DeriveKey("password", zeroSalt); !errors.Is(err, ErrCapabilityUnsupported) {
		t.Fatalf("expected ErrCapabilityUnsupported, got %v", err)
	}
}

func TestFingerprint_DeterministicAndDistinctFromKey(t *testing.T) {
	svc := NewKeyBoxService(NewStdProvider())

	fp1, err := svc.Fingerprint("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("Fingerprint error: %v", err)
	}
	fp2, err := svc.Fingerprint("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("Fingerprint error: %v", err)
	}
	if fp1 != fp2 {
		t.Fatalf("expected identical fingerprints, got %q and %q", fp1, fp2)
	}

	key, err := svc.DeriveKey("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	if fp1 == key {
		t.Fatal("fingerprint must differ from the first-layer key")
	}

	// The fingerprint is exactly one more derivation pass over the key text.
	second, err := svc.DeriveKey(key, zeroSalt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	if fp1 != second {
		t.Fatal("fingerprint is not DeriveKey(DeriveKey(password, salt), salt)")
	}
}

func TestFingerprint_DifferentSaltsDifferentFingerprints(t *testing.T) {
	svc := NewKeyBoxService(NewStdProvider())

	saltA, _ := svc.GenerateSalt()
	saltB, _ := svc.GenerateSalt()

	fpA, err := svc.Fingerprint("same password", saltA)
	if err != nil {
		t.Fatalf("Fingerprint error: %v", err)
	}
	fpB, err := svc.Fingerprint("same password", saltB)
	if err != nil {
		t.Fatalf("Fingerprint error: %v", err)
	}

	if fpA == fpB {
		t.Fatal("different salts produced the same fingerprint")
	}
}
