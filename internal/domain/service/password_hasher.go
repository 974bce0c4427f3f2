// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "scribe/internal/domain/entity"

// PasswordHasher derives and verifies password credentials.
// Implementations are safe for concurrent use.
type PasswordHasher interface {
	// Hash derives a hex-encoded key from password, salt and iterations. It is deterministic.
	Hash(password, salt string, iterations int) (string, error)

	// NewSalt returns a fresh random hex salt.
	NewSalt() (string, error)

	// DefaultIterations returns the work factor applied to new credentials.
	DefaultIterations() int

	// IsValidPassword reports whether candidate satisfies the password rules.
	IsValidPassword(candidate string) bool

	// Derive builds a new credential for password with a fresh salt and the default work factor.
	Derive(password string) (entity.Credential, error)

	// Matches reports whether password reproduces credential.
	Matches(password string, credential entity.Credential) (bool, error)
}
