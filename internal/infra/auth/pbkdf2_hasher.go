// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"

	"scribe/config"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 256
)

// ErrMalformedStoredPassword is returned by ParseStored for anything other than "(hash,salt,iterations)".
var ErrMalformedStoredPassword = errors.New("malformed stored password")

// pbkdf2Hasher derives credentials with PBKDF2-HMAC-SHA256 and renders them as lowercase hex.
type pbkdf2Hasher struct {
	iterations int
	saltBytes  int
	hashBytes  int
}

func NewPBKDF2Hasher(cfg *config.Config) service.PasswordHasher {
	return newPBKDF2Hasher(cfg.Auth.Iterations, cfg.Auth.SaltBytes, cfg.Auth.HashBytes)
}

func newPBKDF2Hasher(iterations, saltBytes, hashBytes int) *pbkdf2Hasher {
	return &pbkdf2Hasher{
		iterations: iterations,
		saltBytes:  saltBytes,
		hashBytes:  hashBytes,
	}
}

// Hash keys the derivation with the salt's hex text, not its decoded bytes,
// so credentials created by earlier deployments keep verifying.
func (h *pbkdf2Hasher) Hash(password, salt string, iterations int) (string, error) {
	return deriveHex(password, salt, iterations, h.hashBytes)
}

func deriveHex(password, salt string, iterations, keyLen int) (string, error) {
	if iterations <= 0 {
		return "", errors.Errorf("invalid iteration count %d", iterations)
	}
	if salt == "" {
		return "", errors.New("salt must not be empty")
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLen, sha256.New)

	return hex.EncodeToString(key), nil
}

func (h *pbkdf2Hasher) NewSalt() (string, error) {
	buf := make([]byte, h.saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random salt")
	}

	return hex.EncodeToString(buf), nil
}

func (h *pbkdf2Hasher) DefaultIterations() int {
	return h.iterations
}

func (h *pbkdf2Hasher) IsValidPassword(candidate string) bool {
	n := utf8.RuneCountInString(candidate)
	if n < minPasswordLength || n > maxPasswordLength {
		return false
	}

	first, _ := utf8.DecodeRuneInString(candidate)
	last, _ := utf8.DecodeLastRuneInString(candidate)

	return !unicode.IsSpace(first) && !unicode.IsSpace(last)
}

func (h *pbkdf2Hasher) Derive(password string) (entity.Credential, error) {
	salt, err := h.NewSalt()
	if err != nil {
		return entity.Credential{}, err
	}

	hash, err := h.Hash(password, salt, h.iterations)
	if err != nil {
		return entity.Credential{}, err
	}

	return entity.Credential{Hash: hash, Salt: salt, Iterations: h.iterations}, nil
}

// Matches recomputes the hash with the credential's own salt, work factor and key length.
func (h *pbkdf2Hasher) Matches(password string, credential entity.Credential) (bool, error) {
	keyLen := len(credential.Hash) / 2
	if keyLen == 0 || len(credential.Hash)%2 != 0 {
		return false, nil
	}

	candidate, err := deriveHex(password, credential.Salt, credential.Iterations, keyLen)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(credential.Hash)) == 1, nil
}

// ParseStored splits the legacy composite column value "(hash,salt,iterations)".
func ParseStored(raw string) (entity.Credential, error) {
	if len(raw) < 2 || raw[0] != '(' || raw[len(raw)-1] != ')' {
		return entity.Credential{}, errors.Wrapf(ErrMalformedStoredPassword, "missing parentheses")
	}

	fields := strings.Split(raw[1:len(raw)-1], ",")
	if len(fields) != 3 || fields[0] == "" || fields[1] == "" {
		return entity.Credential{}, errors.Wrapf(ErrMalformedStoredPassword, "expected 3 fields, got %d", len(fields))
	}

	iterations, err := strconv.Atoi(fields[2])
	if err != nil || iterations <= 0 {
		return entity.Credential{}, errors.Wrapf(ErrMalformedStoredPassword, "iterations %q", fields[2])
	}

	return entity.Credential{Hash: fields[0], Salt: fields[1], Iterations: iterations}, nil
}
