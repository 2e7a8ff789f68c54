// Package rbac maps API routes to the capability they require and
// capabilities to the minimum organization role that grants them.
package rbac

import (
	"fmt"
	"strings"

	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

type Capability string

const (
	// CapabilityRead views tickets, categories, members and analytics.
	CapabilityRead Capability = "read"
	// CapabilityRespond creates tickets and conversation entries.
	CapabilityRespond Capability = "respond"
	// CapabilityAssign assigns tickets and changes their status.
	CapabilityAssign Capability = "assign"
	// CapabilityManage changes organization settings, categories, members
	// and domains.
	CapabilityManage Capability = "manage"
	// CapabilityOwn deletes the organization.
	CapabilityOwn       Capability = "own"
	CapabilityUndefined Capability = ""
)

// RequiredRole returns the minimum role granting a capability.
func RequiredRole(capability Capability) (models.Role, error) {
	switch capability {
	case CapabilityRead, CapabilityRespond:
		return models.RoleMember, nil
	case CapabilityAssign, CapabilityManage:
		return models.RoleAdmin, nil
	case CapabilityOwn:
		return models.RoleOwner, nil
	default:
		return "", fmt.Errorf("unknown capability %q", capability)
	}
}

type rbacEntry struct {
	capability Capability
}

var ServicePermissions *PermissionsMap = NewPermissionsMap()

// PermissionsMap Map Method and Path to a rbacEntry
type PermissionsMap map[string]map[string]rbacEntry

func NewPermissionsMap() *PermissionsMap {
	return &PermissionsMap{}
}

func (pm *PermissionsMap) Permission(method string, path string) (capability Capability, err error) {
	path = strings.Trim(path, "/")
	if paths, ok := (*pm)[method]; ok {
		if permission, ok := paths[path]; ok {
			return permission.capability, nil
		}
	}
	return "", fmt.Errorf("no permission found for method=%s and path=%s", method, path)
}

func (pm *PermissionsMap) Add(method string, path string, capability Capability) *PermissionsMap {
	// Avoid using empty strings
	if method == "" || path == "" || capability == "" {
		return nil
	}

	// Paths are stored without trailing or leading slashes, so trim them when storing
	path = strings.Trim(path, "/")
	if paths, ok := (*pm)[method]; ok {
		paths[path] = rbacEntry{
			capability: capability,
		}
	} else {
		(*pm)[method] = map[string]rbacEntry{
			path: {
				capability: capability,
			},
		}
	}
	return pm
}
