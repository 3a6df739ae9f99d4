package crypto

import (
	"testing"
)

// The protocol promises that two independently initialised environments
// produce bit-identical keys and ciphertext for the same inputs. The tests
// below model the two environments as two service stacks built over two
// separately constructed providers, using the worked example shared with
// the other implementations of the scheme: password "correct-horse", salt
// "AAAAAAAAAAAAAAAAAAAAAA==", plaintext "hello world".

func TestCrossEnvironment_KeyAndFingerprintAgree(t *testing.T) {
	native := NewKeyBoxService(NewStdProvider())
	sandboxed := NewKeyBoxService(NewStdProvider())

	keyA, err := native.DeriveKey("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("native DeriveKey error: %v", err)
	}
	keyB, err := sandboxed.DeriveKey("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("sandboxed DeriveKey error: %v", err)
	}
	if keyA != keyB {
		t.Fatalf("derived keys differ across environments: %q vs %q", keyA, keyB)
	}

	fpA, err := native.Fingerprint("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("native Fingerprint error: %v", err)
	}
	fpB, err := sandboxed.Fingerprint("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("sandboxed Fingerprint error: %v", err)
	}
	if fpA != fpB {
		t.Fatalf("fingerprints differ across environments: %q vs %q", fpA, fpB)
	}
}

func TestCrossEnvironment_CiphertextInterchange(t *testing.T) {
	nativeKeys := NewKeyBoxService(NewStdProvider())
	nativeCipher := NewStreamCipherService(NewStdProvider())
	sandboxedCipher := NewStreamCipherService(NewStdProvider())

	key, err := nativeKeys.DeriveKey("correct-horse", zeroSalt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	ctA, err := nativeCipher.EncryptText(key, zeroSalt, "hello world")
	if err != nil {
		t.Fatalf("native EncryptText error: %v", err)
	}
	ctB, err := sandboxedCipher.EncryptText(key, zeroSalt, "hello world")
	if err != nil {
		t.Fatalf("sandboxed EncryptText error: %v", err)
	}

	// CBC with a deterministic key and IV is itself deterministic, so both
	// environments must produce the same ciphertext bytes.
	if ctA != ctB {
		t.Fatalf("ciphertext differs across environments: %q vs %q", ctA, ctB)
	}

	// Either environment decrypts the other's output.
	pt, err := sandboxedCipher.DecryptText(key, zeroSalt, ctA)
	if err != nil {
		t.Fatalf("sandboxed DecryptText error: %v", err)
	}
	if pt != "hello world" {
		t.Fatalf("cross-environment decrypt = %q, want %q", pt, "hello world")
	}
}
