package crypto

import (
	"bytes"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 32
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal", n)
	}
}

func TestNewPasswordHash_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, salt, err := NewPasswordHash("hunter22")
	if err != nil {
		t.Fatalf("NewPasswordHash: %v", err)
	}
	if len(salt) != SaltLen {
		t.Fatalf("salt len=%d, want %d", len(salt), SaltLen)
	}
	if !VerifyPassword([]byte("hunter22"), salt, hash) {
		t.Fatalf("fresh hash does not verify")
	}

	hash2, salt2, err := NewPasswordHash("hunter22")
	if err != nil {
		t.Fatalf("NewPasswordHash(2): %v", err)
	}
	if bytes.Equal(salt, salt2) || bytes.Equal(hash, hash2) {
		t.Fatalf("salts must differ between calls")
	}
}

func TestHashPassword_DeterministicOnSameInput(t *testing.T) {
	t.Parallel()

	pw := []byte("p@ssw0rd")
	salt := []byte("NaCl-16-bytes?")

	h1 := HashPassword(pw, salt)
	h2 := HashPassword(pw, salt)
	if !bytes.Equal(h1, h2) {
		t.Fatalf("hash not deterministic for same input")
	}
	if bytes.Equal(h1, HashPassword(pw, []byte("another-salt----"))) {
		t.Fatalf("hash should differ when salt differs")
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	pw := []byte("correct horse battery staple")
	salt := []byte("salty-salt-123456")
	hash := HashPassword(pw, salt)

	if !VerifyPassword(pw, salt, hash) {
		t.Fatalf("expected true for correct password")
	}
	if VerifyPassword([]byte("wrong"), salt, hash) {
		t.Fatalf("expected false for wrong password")
	}
	if VerifyPassword(pw, []byte("wrong-salt"), hash) {
		t.Fatalf("expected false for wrong salt")
	}
	if VerifyPassword(pw, salt, nil) {
		t.Fatalf("expected false for empty stored hash")
	}
}
