package auth

import (
	"errors"
	"testing"

	"github.com/spec-kit/portal-identity/internal/config"
)

func TestPlainVerifier(t *testing.T) {
	v := PlainVerifier{}

	stored, err := v.Store("0000")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if stored != "0000" {
		t.Fatalf("plain Store changed the secret: %q", stored)
	}

	if err := v.Verify(stored, "0000"); err != nil {
		t.Errorf("Verify matching secret: %v", err)
	}
	if err := v.Verify(stored, "0001"); !errors.Is(err, ErrCredentialMismatch) {
		t.Errorf("Verify wrong secret: got %v, want ErrCredentialMismatch", err)
	}
	if err := v.Verify(stored, ""); !errors.Is(err, ErrCredentialMismatch) {
		t.Errorf("Verify empty secret: got %v, want ErrCredentialMismatch", err)
	}
}

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{Cost: 4}

	stored, err := v.Store("newpass")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if stored == "newpass" {
		t.Fatal("bcrypt Store kept the plaintext")
	}

	if err := v.Verify(stored, "newpass"); err != nil {
		t.Errorf("Verify matching secret: %v", err)
	}
	if err := v.Verify(stored, "wrong"); !errors.Is(err, ErrCredentialMismatch) {
		t.Errorf("Verify wrong secret: got %v, want ErrCredentialMismatch", err)
	}
}

func TestNewCredentialVerifier(t *testing.T) {
	if _, err := NewCredentialVerifier(config.AuthConfig{CredentialScheme: config.CredentialSchemePlain}); err != nil {
		t.Errorf("plain scheme: %v", err)
	}
	if _, err := NewCredentialVerifier(config.AuthConfig{CredentialScheme: config.CredentialSchemeBcrypt, BcryptCost: 10}); err != nil {
		t.Errorf("bcrypt scheme: %v", err)
	}
	if _, err := NewCredentialVerifier(config.AuthConfig{CredentialScheme: "md5"}); err == nil {
		t.Error("unknown scheme accepted")
	}
}
