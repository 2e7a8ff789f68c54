// Package cache provides the application cache for tenant resolution and
// membership lookups.
package cache

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

var NotFound = errors.New("not found in cache")

type Cache interface {
	// GetOrganizationBySubdomain returns the cached tenant for a subdomain,
	// or NotFound. Misses are cached as nil organizations.
	GetOrganizationBySubdomain(ctx context.Context, subdomain string) (*api.OrganizationResponse, error)
	SetOrganizationBySubdomain(ctx context.Context, subdomain string, org *api.OrganizationResponse) error

	GetMembershipRole(ctx context.Context, orgUUID string, userUUID string) (models.Role, error)
	SetMembershipRole(ctx context.Context, orgUUID string, userUUID string, role models.Role) error
	DeleteMembershipRole(ctx context.Context, orgUUID string, userUUID string) error
}

func Initialize() Cache {
	if config.Get().Clients.Redis.Host != "" {
		return NewRedisCache()
	} else {
		log.Logger.Warn().Msg("No application cache in use")
		return NewNoOpCache()
	}
}
