package services

import (
	"crypto/rand"
	"testing"
)

func newTestCipher(t *testing.T) *tokenCipher {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("key: %v", err)
	}
	tc, err := newTokenCipher(key)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	return tc
}

func TestTokenCipherRoundtrip(t *testing.T) {
	tc := newTestCipher(t)

	sealed, err := tc.Encrypt("1//0refresh-token-value")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if sealed == "1//0refresh-token-value" {
		t.Fatal("ciphertext equals plaintext")
	}

	opened, err := tc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if opened != "1//0refresh-token-value" {
		t.Errorf("roundtrip = %q", opened)
	}
}

func TestTokenCipherUniqueNonces(t *testing.T) {
	tc := newTestCipher(t)
	a, err := tc.Encrypt("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := tc.Encrypt("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if a == b {
		t.Error("two seals of the same input produced identical ciphertext")
	}
}

func TestTokenCipherRejectsTampering(t *testing.T) {
	tc := newTestCipher(t)
	sealed, err := tc.Encrypt("secret")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	corrupted := []byte(sealed)
	corrupted[len(corrupted)-5] ^= 'x'
	if _, err := tc.Decrypt(string(corrupted)); err == nil {
		t.Error("tampered ciphertext decrypted without error")
	}

	other := newTestCipher(t)
	if _, err := other.Decrypt(sealed); err == nil {
		t.Error("ciphertext decrypted under a different key")
	}
}
