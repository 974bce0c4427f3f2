// Package entity contains the core business objects of the project.
package entity

// Role is a privilege level. The set is closed: admin > contributor > user.
type Role string

const (
	// RoleAdmin may do anything.
	RoleAdmin Role = "admin"
	// RoleContributor may publish blog posts and manage their own.
	RoleContributor Role = "contributor"
	// RoleUser is the default role of a new account.
	RoleUser Role = "user"
)

// AllRoles lists every role from most to least privileged.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleContributor, RoleUser}
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is one of the known roles.
func (r Role) IsValid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r is as privileged as other.
func (r Role) AtLeast(other Role) bool {
	return r.IsValid() && r.rank() >= other.rank()
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleContributor:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}
