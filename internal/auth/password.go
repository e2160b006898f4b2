package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/portal-identity/internal/config"
)

// ErrCredentialMismatch is returned when a presented secret does not match
// the stored one.
var ErrCredentialMismatch = errors.New("credential mismatch")

// CredentialVerifier abstracts how secrets are stored and compared, so that a
// salted-hash scheme can replace plain equality without changing the login or
// password-change workflows.
type CredentialVerifier interface {
	// Verify compares a presented secret against its stored representation.
	Verify(stored, presented string) error
	// Store converts a new plaintext secret into the representation to persist.
	Store(plain string) (string, error)
}

// NewCredentialVerifier selects the configured scheme.
func NewCredentialVerifier(cfg config.AuthConfig) (CredentialVerifier, error) {
	switch cfg.CredentialScheme {
	case config.CredentialSchemePlain:
		return PlainVerifier{}, nil
	case config.CredentialSchemeBcrypt:
		return BcryptVerifier{Cost: cfg.BcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", cfg.CredentialScheme)
	}
}

// PlainVerifier compares secrets by exact equality, matching the legacy store
// where credentials are kept verbatim.
type PlainVerifier struct{}

func (PlainVerifier) Verify(stored, presented string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		return ErrCredentialMismatch
	}
	return nil
}

func (PlainVerifier) Store(plain string) (string, error) {
	return plain, nil
}

// BcryptVerifier stores bcrypt hashes and compares against them.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Verify(stored, presented string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)); err != nil {
		return ErrCredentialMismatch
	}
	return nil
}

func (v BcryptVerifier) Store(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), v.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
