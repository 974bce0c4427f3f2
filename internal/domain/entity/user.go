package entity

import "time"

// User is an account. Name is the identity key and is unique.
type User struct {
	Name       string
	Credential Credential
	Role       Role
	CreatedAt  time.Time
}

// Credential is a derived password. Hash cannot be reproduced without Salt and Iterations.
type Credential struct {
	Hash       string
	Salt       string
	Iterations int
}

// Identity is the requesting user as asserted by a session token.
type Identity struct {
	Name string
	Role Role
}

// Identity returns the snapshot of u that is embedded into session tokens.
func (u *User) Identity() Identity {
	return Identity{Name: u.Name, Role: u.Role}
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

const (
	minNameLength = 3
	maxNameLength = 32
)

// IsValidUserName reports whether name is 3 to 32 ASCII letters, digits and
// single interior spaces, with no whitespace at either end.
func IsValidUserName(name string) bool {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return false
	}

	prevSpace := false
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			prevSpace = false
		case ch == ' ':
			if i == 0 || i == len(name)-1 || prevSpace {
				return false
			}
			prevSpace = true
		default:
			return false
		}
	}

	return true
}
