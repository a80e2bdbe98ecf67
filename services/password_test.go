package services

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	password := "Str0ng!Passw0rd"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hashed == password {
		t.Fatal("hash should not equal the plaintext")
	}
	if !strings.Contains(hashed, "$") {
		t.Errorf("hash %q missing salt separator", hashed)
	}

	ok, err := VerifyPassword(hashed, password)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}

	ok, err = VerifyPassword(hashed, "wrong-password")
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("Str0ng!Passw0rd")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("Str0ng!Passw0rd")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHashPasswordRejectsWeak(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Error("expected an error for a weak password")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-hash", "whatever"); err == nil {
		t.Error("expected an error for a malformed stored hash")
	}
}
