package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOrder(t *testing.T) {
	assert.True(t, RoleOwner.HasAtLeast(RoleAgent))
	assert.True(t, RoleOwner.HasAtLeast(RoleOwner))
	assert.True(t, RoleAdmin.HasAtLeast(RoleAgent))
	assert.True(t, RoleAgent.HasAtLeast(RoleMember))

	assert.False(t, RoleMember.HasAtLeast(RoleAdmin))
	assert.False(t, RoleAgent.HasAtLeast(RoleAdmin))
	assert.False(t, RoleAdmin.HasAtLeast(RoleOwner))

	// unknown roles never qualify
	assert.False(t, Role("superuser").HasAtLeast(RoleMember))
	assert.False(t, RoleOwner.HasAtLeast(Role("superuser")))
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleAdmin, RoleAgent, RoleMember} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("root").Valid())
}

func TestMembershipBeforeCreate(t *testing.T) {
	m := Membership{OrganizationUUID: "org-1", UserUUID: "user-1", Role: RoleOwner}
	assert.NoError(t, m.BeforeCreate(nil))
	assert.NotEmpty(t, m.UUID)

	badRole := Membership{OrganizationUUID: "org-1", UserUUID: "user-1", Role: "root"}
	assert.Error(t, badRole.BeforeCreate(nil))

	noUser := Membership{OrganizationUUID: "org-1", Role: RoleMember}
	assert.Error(t, noUser.BeforeCreate(nil))
}
