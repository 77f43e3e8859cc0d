package argon2id

import (
	"strings"
	"testing"
)

func TestEncodeHashAndVerify(t *testing.T) {
	password := "SecureP@ss123!"

	encoded, err := EncodeHash(password, DefaultParams)
	if err != nil {
		t.Fatalf("EncodeHash() error = %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("EncodeHash() = %q, want $argon2id$ prefix", encoded)
	}

	match, err := VerifyPassword(password, encoded)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !match {
		t.Error("VerifyPassword() = false for the correct password")
	}

	match, err = VerifyPassword("wrong-password", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if match {
		t.Error("VerifyPassword() = true for an incorrect password")
	}
}

func TestEncodeHash_UniqueSalts(t *testing.T) {
	password := "SecureP@ss123!"

	first, err := EncodeHash(password, DefaultParams)
	if err != nil {
		t.Fatalf("EncodeHash() error = %v", err)
	}
	second, err := EncodeHash(password, DefaultParams)
	if err != nil {
		t.Fatalf("EncodeHash() error = %v", err)
	}
	if first == second {
		t.Error("EncodeHash() produced identical hashes, salts should differ")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("password", "not-an-encoded-hash"); err == nil {
		t.Error("VerifyPassword() error = nil for a malformed hash")
	}
}
