package cache

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

// A noop cache doesn't actually cache anything, but provides an implementation
// of the caching interfaces
type noOpCache struct {
}

func NewNoOpCache() *noOpCache {
	return &noOpCache{}
}

// GetOrganizationBySubdomain a NoOp version to fetch a cached tenant
func (c *noOpCache) GetOrganizationBySubdomain(ctx context.Context, subdomain string) (*api.OrganizationResponse, error) {
	return nil, NotFound
}

// SetOrganizationBySubdomain a NoOp version to store a tenant
func (c *noOpCache) SetOrganizationBySubdomain(ctx context.Context, subdomain string, org *api.OrganizationResponse) error {
	return nil
}

// GetMembershipRole a NoOp version to fetch a cached role
func (c *noOpCache) GetMembershipRole(ctx context.Context, orgUUID string, userUUID string) (models.Role, error) {
	return "", NotFound
}

// SetMembershipRole a NoOp version to store a role
func (c *noOpCache) SetMembershipRole(ctx context.Context, orgUUID string, userUUID string, role models.Role) error {
	return nil
}

// DeleteMembershipRole a NoOp version to drop a cached role
func (c *noOpCache) DeleteMembershipRole(ctx context.Context, orgUUID string, userUUID string) error {
	return nil
}
