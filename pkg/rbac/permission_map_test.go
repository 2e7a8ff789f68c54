package rbac

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

func TestRequiredRole(t *testing.T) {
	role, err := RequiredRole(CapabilityRead)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleMember, role)

	role, err = RequiredRole(CapabilityRespond)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleMember, role)

	role, err = RequiredRole(CapabilityAssign)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = RequiredRole(CapabilityManage)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = RequiredRole(CapabilityOwn)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleOwner, role)

	_, err = RequiredRole(CapabilityUndefined)
	assert.Error(t, err)
	_, err = RequiredRole(Capability("banana"))
	assert.Error(t, err)
}

func TestRoleSatisfiesCapability(t *testing.T) {
	// Every role can read and respond, only admins and above can manage.
	manage, err := RequiredRole(CapabilityManage)
	assert.NoError(t, err)
	assert.True(t, models.RoleOwner.HasAtLeast(manage))
	assert.True(t, models.RoleAdmin.HasAtLeast(manage))
	assert.False(t, models.RoleAgent.HasAtLeast(manage))
	assert.False(t, models.RoleMember.HasAtLeast(manage))

	read, err := RequiredRole(CapabilityRead)
	assert.NoError(t, err)
	for _, role := range []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleAgent, models.RoleMember} {
		assert.True(t, role.HasAtLeast(read))
	}
}

func TestPermissionsMapAdd(t *testing.T) {
	pm := NewPermissionsMap()
	assert.NotNil(t, pm.Add(http.MethodGet, "/tickets/", CapabilityRead))
	assert.NotNil(t, pm.Add(http.MethodPost, "/tickets/", CapabilityRespond))
	assert.NotNil(t, pm.Add(http.MethodPut, "/tickets/:uuid/assign", CapabilityAssign))

	assert.Nil(t, pm.Add("", "/tickets/", CapabilityRead))
	assert.Nil(t, pm.Add(http.MethodGet, "", CapabilityRead))
	assert.Nil(t, pm.Add(http.MethodGet, "/tickets/", CapabilityUndefined))
}

func TestPermissionsMapPermission(t *testing.T) {
	pm := NewPermissionsMap().
		Add(http.MethodGet, "/tickets/", CapabilityRead).
		Add(http.MethodPut, "/tickets/:uuid/assign", CapabilityAssign)

	capability, err := pm.Permission(http.MethodGet, "tickets")
	assert.NoError(t, err)
	assert.Equal(t, CapabilityRead, capability)

	// Leading and trailing slashes don't matter
	capability, err = pm.Permission(http.MethodGet, "/tickets/")
	assert.NoError(t, err)
	assert.Equal(t, CapabilityRead, capability)

	capability, err = pm.Permission(http.MethodPut, "tickets/:uuid/assign")
	assert.NoError(t, err)
	assert.Equal(t, CapabilityAssign, capability)

	_, err = pm.Permission(http.MethodDelete, "tickets")
	assert.Error(t, err)
	_, err = pm.Permission(http.MethodGet, "nope")
	assert.Error(t, err)
}
