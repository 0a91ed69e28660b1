package app

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier seals passwords for storage and checks login attempts
// against the stored form. The register and login flows never look at the
// stored value directly, so schemes can be swapped without touching them.
type CredentialVerifier interface {
	Seal(password string) (string, error)
	Verify(stored, password string) bool
}

// PlaintextVerifier stores passwords as provided and compares by equality.
// This matches the historical behavior of the service and is the default;
// it is a known weakness, not an oversight.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Seal(password string) (string, error) {
	return password, nil
}

func (PlaintextVerifier) Verify(stored, password string) bool {
	return stored == password
}

// BcryptVerifier is the hardened scheme: salted bcrypt hashes at registration,
// hash comparison at login.
type BcryptVerifier struct{}

func (BcryptVerifier) Seal(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// VerifierForScheme maps a config value to a verifier.
func VerifierForScheme(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "", "plaintext":
		return PlaintextVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
