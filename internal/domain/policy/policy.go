// Package policy decides whether a requesting identity may perform an action.
// Decisions are pure and deterministic; the package performs no I/O.
package policy

import "scribe/internal/domain/entity"

// Action is an operation gated by the policy.
type Action string

const (
	ActionAuthenticate   Action = "authenticate"
	ActionReadBlogPost   Action = "blog_post.read"
	ActionReadTag        Action = "tag.read"
	ActionCreateUser     Action = "user.create"
	ActionListUsers      Action = "user.list"
	ActionReadUser       Action = "user.read"
	ActionUpdateUser     Action = "user.update"
	ActionDeleteUser     Action = "user.delete"
	ActionCreateBlogPost Action = "blog_post.create"
	ActionUpdateBlogPost Action = "blog_post.update"
	ActionDeleteBlogPost Action = "blog_post.delete"
	ActionManageTags     Action = "tag.manage"
)

// Denial reasons, keyed by the field that names the violated constraint.
const (
	FieldRole  = "role"
	FieldAdmin = "admin"

	ReasonNoAccess      = "You do not have access to this resource."
	ReasonRoleImmutable = "You may not update role."
	ReasonAdminOnly     = "You must be an admin to perform this action."
)

// Denial explains a refused action.
type Denial struct {
	Field  string
	Reason string
}

func (d *Denial) Error() string {
	return d.Field + ": " + d.Reason
}

// Target describes the resource an action applies to.
type Target struct {
	owner    string
	scoped   bool
	setsRole bool
}

// Unscoped is a target whose owner is not known yet. Ownership rules are
// treated as satisfiable, so only role requirements are checked. Use it to
// reject an identity before touching the store.
func Unscoped() Target {
	return Target{}
}

// Account targets the user account called name.
func Account(name string) Target {
	return Target{owner: name, scoped: true}
}

// AccountRoleChange targets the user account called name with an update that sets role.
func AccountRoleChange(name string) Target {
	return Target{owner: name, scoped: true, setsRole: true}
}

// AuthoredBy targets a blog post written by author.
func AuthoredBy(author string) Target {
	return Target{owner: author, scoped: true}
}

// Authorize returns nil if who may perform action on target, or the reason it may not.
// A nil who is an anonymous request.
func Authorize(who *entity.Identity, action Action, target Target) *Denial {
	switch action {
	case ActionAuthenticate, ActionReadBlogPost, ActionReadTag, ActionCreateUser:
		return nil
	}

	if who == nil {
		return deny(FieldRole, ReasonNoAccess)
	}

	switch action {
	case ActionListUsers:
		if who.IsAdmin() {
			return nil
		}

		return deny(FieldRole, ReasonNoAccess)

	case ActionReadUser, ActionDeleteUser:
		return selfOrAdmin(who, target)

	case ActionUpdateUser:
		if denial := selfOrAdmin(who, target); denial != nil {
			return denial
		}
		if target.setsRole && !who.IsAdmin() {
			return deny(FieldRole, ReasonRoleImmutable)
		}

		return nil

	case ActionCreateBlogPost:
		if who.Role.AtLeast(entity.RoleContributor) {
			return nil
		}

		return deny(FieldRole, ReasonNoAccess)

	case ActionUpdateBlogPost, ActionDeleteBlogPost:
		switch {
		case who.IsAdmin():
			return nil
		case who.Role == entity.RoleContributor && (!target.scoped || target.owner == who.Name):
			return nil
		default:
			return deny(FieldRole, ReasonNoAccess)
		}

	case ActionManageTags:
		if who.IsAdmin() {
			return nil
		}

		return deny(FieldAdmin, ReasonAdminOnly)
	}

	return deny(FieldRole, ReasonNoAccess)
}

func selfOrAdmin(who *entity.Identity, target Target) *Denial {
	if who.IsAdmin() || (target.scoped && target.owner == who.Name) {
		return nil
	}

	return deny(FieldRole, ReasonNoAccess)
}

func deny(field, reason string) *Denial {
	return &Denial{Field: field, Reason: reason}
}
