package policy

import (
	"testing"

	"scribe/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin       = &entity.Identity{Name: "Ada Admin", Role: entity.RoleAdmin}
	contributor = &entity.Identity{Name: "Carl Contrib", Role: entity.RoleContributor}
	other       = &entity.Identity{Name: "Cora Contrib", Role: entity.RoleContributor}
	regular     = &entity.Identity{Name: "Uma User", Role: entity.RoleUser}
)

func TestAuthorize_PublicActions(t *testing.T) {
	for _, action := range []Action{ActionAuthenticate, ActionReadBlogPost, ActionReadTag, ActionCreateUser} {
		t.Run(string(action), func(t *testing.T) {
			assert.Nil(t, Authorize(nil, action, Unscoped()))
			assert.Nil(t, Authorize(regular, action, Unscoped()))
		})
	}
}

func TestAuthorize_AnonymousIsDeniedProtectedActions(t *testing.T) {
	for _, action := range []Action{ActionListUsers, ActionReadUser, ActionUpdateUser, ActionDeleteUser,
		ActionCreateBlogPost, ActionUpdateBlogPost, ActionDeleteBlogPost, ActionManageTags} {
		denial := Authorize(nil, action, Unscoped())
		require.NotNil(t, denial, action)
		assert.Equal(t, FieldRole, denial.Field)
	}
}

func TestAuthorize_Matrix(t *testing.T) {
	tests := []struct {
		name   string
		who    *entity.Identity
		action Action
		target Target
		field  string // empty means allowed
		reason string
	}{
		{"admin lists users", admin, ActionListUsers, Unscoped(), "", ""},
		{"contributor lists users", contributor, ActionListUsers, Unscoped(), FieldRole, ReasonNoAccess},
		{"user lists users", regular, ActionListUsers, Unscoped(), FieldRole, ReasonNoAccess},

		{"admin reads any user", admin, ActionReadUser, Account(regular.Name), "", ""},
		{"user reads self", regular, ActionReadUser, Account(regular.Name), "", ""},
		{"user reads other", regular, ActionReadUser, Account(admin.Name), FieldRole, ReasonNoAccess},
		{"contributor deletes other", contributor, ActionDeleteUser, Account(regular.Name), FieldRole, ReasonNoAccess},
		{"user deletes self", regular, ActionDeleteUser, Account(regular.Name), "", ""},
		{"admin deletes any user", admin, ActionDeleteUser, Account(regular.Name), "", ""},

		{"user updates self", regular, ActionUpdateUser, Account(regular.Name), "", ""},
		{"user updates other", regular, ActionUpdateUser, Account(contributor.Name), FieldRole, ReasonNoAccess},
		{"user sets own role", regular, ActionUpdateUser, AccountRoleChange(regular.Name), FieldRole, ReasonRoleImmutable},
		{"contributor sets own role", contributor, ActionUpdateUser, AccountRoleChange(contributor.Name), FieldRole, ReasonRoleImmutable},
		{"user sets other role", regular, ActionUpdateUser, AccountRoleChange(admin.Name), FieldRole, ReasonNoAccess},
		{"admin sets any role", admin, ActionUpdateUser, AccountRoleChange(regular.Name), "", ""},

		{"admin creates post", admin, ActionCreateBlogPost, Unscoped(), "", ""},
		{"contributor creates post", contributor, ActionCreateBlogPost, Unscoped(), "", ""},
		{"user creates post", regular, ActionCreateBlogPost, Unscoped(), FieldRole, ReasonNoAccess},

		{"admin updates any post", admin, ActionUpdateBlogPost, AuthoredBy(other.Name), "", ""},
		{"author updates own post", contributor, ActionUpdateBlogPost, AuthoredBy(contributor.Name), "", ""},
		{"contributor updates other post", contributor, ActionUpdateBlogPost, AuthoredBy(other.Name), FieldRole, ReasonNoAccess},
		{"user updates own-named post", regular, ActionUpdateBlogPost, AuthoredBy(regular.Name), FieldRole, ReasonNoAccess},
		{"admin deletes any post", admin, ActionDeleteBlogPost, AuthoredBy(contributor.Name), "", ""},
		{"author deletes own post", contributor, ActionDeleteBlogPost, AuthoredBy(contributor.Name), "", ""},
		{"contributor deletes other post", contributor, ActionDeleteBlogPost, AuthoredBy(other.Name), FieldRole, ReasonNoAccess},
		{"contributor pre-check passes", contributor, ActionDeleteBlogPost, Unscoped(), "", ""},
		{"user pre-check fails", regular, ActionDeleteBlogPost, Unscoped(), FieldRole, ReasonNoAccess},

		{"admin manages tags", admin, ActionManageTags, Unscoped(), "", ""},
		{"contributor manages tags", contributor, ActionManageTags, Unscoped(), FieldAdmin, ReasonAdminOnly},
		{"user manages tags", regular, ActionManageTags, Unscoped(), FieldAdmin, ReasonAdminOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			denial := Authorize(tt.who, tt.action, tt.target)
			if tt.field == "" {
				assert.Nil(t, denial)

				return
			}
			require.NotNil(t, denial)
			assert.Equal(t, tt.field, denial.Field)
			assert.Equal(t, tt.reason, denial.Reason)
		})
	}
}

func TestAuthorize_IsDeterministic(t *testing.T) {
	first := Authorize(contributor, ActionUpdateBlogPost, AuthoredBy(other.Name))
	for range 10 {
		assert.Equal(t, first, Authorize(contributor, ActionUpdateBlogPost, AuthoredBy(other.Name)))
	}
}

func TestAuthorize_UnknownActionIsDenied(t *testing.T) {
	denial := Authorize(admin, Action("bogus"), Unscoped())
	require.NotNil(t, denial)
	assert.Equal(t, FieldRole, denial.Field)
}
