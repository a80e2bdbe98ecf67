package utils

import (
	"regexp"
	"testing"
)

func TestGenerateRecoveryCodes(t *testing.T) {
	codes, err := GenerateRecoveryCodes()
	if err != nil {
		t.Fatalf("GenerateRecoveryCodes() error = %v", err)
	}

	if len(codes) != NumRecoveryCodes {
		t.Fatalf("generated %d codes, want %d", len(codes), NumRecoveryCodes)
	}

	format := regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}$`)
	seen := make(map[string]bool)
	for _, code := range codes {
		if !format.MatchString(code) {
			t.Errorf("code %q does not match XXXX-XXXX hex format", code)
		}
		if seen[code] {
			t.Errorf("duplicate code %q", code)
		}
		seen[code] = true
	}
}

func TestHashRecoveryCodes(t *testing.T) {
	codes := []string{"AAAA-BBBB", "CCCC-DDDD"}
	hashed := HashRecoveryCodes(codes)

	if len(hashed) != len(codes) {
		t.Fatalf("hashed %d codes, want %d", len(hashed), len(codes))
	}
	for i, h := range hashed {
		if h != HashString(codes[i]) {
			t.Errorf("hash %d does not match HashString of the code", i)
		}
		if h == codes[i] {
			t.Errorf("code %d stored in plaintext", i)
		}
	}
}

func TestHashStringIsDeterministic(t *testing.T) {
	if HashString("token") != HashString("token") {
		t.Error("same input hashed to different values")
	}
	if HashString("token") == HashString("other") {
		t.Error("different inputs hashed to the same value")
	}
}
