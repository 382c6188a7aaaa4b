package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier resolves a submitted identity/secret pair to a role.
// The second return is false when the pair matches no configured identity.
type CredentialVerifier interface {
	Verify(identity, secret string) (isAdmin bool, ok bool)
}

// StaticVerifier holds the application's two configured identities. Secrets
// may be stored as bcrypt hashes (recognized by prefix) or plain values;
// plain comparison is constant-time.
type StaticVerifier struct {
	AdminAddress string
	AdminSecret  string
	ChefAddress  string
	ChefSecret   string
}

func (v *StaticVerifier) Verify(identity, secret string) (bool, bool) {
	if match(v.AdminAddress, identity) && secretMatch(v.AdminSecret, secret) {
		return true, true
	}
	if match(v.ChefAddress, identity) && secretMatch(v.ChefSecret, secret) {
		return false, true
	}
	return false, false
}

func match(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func secretMatch(configured, submitted string) bool {
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(submitted)) == nil
	}
	return match(configured, submitted)
}
