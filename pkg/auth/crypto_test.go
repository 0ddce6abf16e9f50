package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id encoding", hash)
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("VerifyPassword() should accept the original password")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("VerifyPassword() should reject a wrong password")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	b, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []string{
		"",
		"not a hash",
		"$argon2id$v=19$m=65536,t=1,p=4$badsalt",
		"$bcrypt$something",
	}
	for _, hash := range tests {
		if VerifyPassword("password", hash) {
			t.Errorf("VerifyPassword(%q) should fail", hash)
		}
	}
}
