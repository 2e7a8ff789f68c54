package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

type redisCache struct {
	client *redis.Client
}

func NewRedisCache() *redisCache {
	c := config.Get()
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisUrl(),
		Username: c.Clients.Redis.Username,
		Password: c.Clients.Redis.Password,
		DB:       c.Clients.Redis.DB,
	})
	return &redisCache{
		client: client,
	}
}

// subdomainKey constructs the cache key for tenant lookups
func subdomainKey(subdomain string) string {
	return fmt.Sprintf("tenant:%v", subdomain)
}

// membershipKey constructs the cache key for role lookups
func membershipKey(orgUUID string, userUUID string) string {
	return fmt.Sprintf("member-role:%v,%v", orgUUID, userUUID)
}

// GetOrganizationBySubdomain tries to retrieve the tenant for a subdomain
// from the cache. A cached nil records a recent miss, so unknown subdomains
// don't hammer the database.
func (c *redisCache) GetOrganizationBySubdomain(ctx context.Context, subdomain string) (*api.OrganizationResponse, error) {
	buf, err := c.get(ctx, subdomainKey(subdomain))
	if err != nil {
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var org *api.OrganizationResponse
	err = json.Unmarshal(buf, &org)
	if err != nil {
		return nil, fmt.Errorf("redis unmarshal error: %w", err)
	}
	return org, nil
}

// SetOrganizationBySubdomain loads the cache with the tenant for a subdomain
func (c *redisCache) SetOrganizationBySubdomain(ctx context.Context, subdomain string, org *api.OrganizationResponse) error {
	buf, err := json.Marshal(org)
	if err != nil {
		return fmt.Errorf("unable to marshal for Redis cache: %w", err)
	}

	c.client.Set(ctx, subdomainKey(subdomain), string(buf), config.Get().Clients.Redis.Expiration.Subdomain)
	return nil
}

// GetMembershipRole tries to retrieve a user's role within an organization
// from the cache
func (c *redisCache) GetMembershipRole(ctx context.Context, orgUUID string, userUUID string) (models.Role, error) {
	buf, err := c.get(ctx, membershipKey(orgUUID, userUUID))
	if err != nil {
		return "", fmt.Errorf("redis get error: %w", err)
	}

	var role models.Role
	err = json.Unmarshal(buf, &role)
	if err != nil {
		return "", fmt.Errorf("redis unmarshal error: %w", err)
	}
	return role, nil
}

// SetMembershipRole loads the cache with a user's role within an organization
func (c *redisCache) SetMembershipRole(ctx context.Context, orgUUID string, userUUID string, role models.Role) error {
	buf, err := json.Marshal(role)
	if err != nil {
		return fmt.Errorf("unable to marshal for Redis cache: %w", err)
	}

	c.client.Set(ctx, membershipKey(orgUUID, userUUID), string(buf), config.Get().Clients.Redis.Expiration.Membership)
	return nil
}

// DeleteMembershipRole drops a cached role after a membership change, so
// revocations take effect without waiting for expiry
func (c *redisCache) DeleteMembershipRole(ctx context.Context, orgUUID string, userUUID string) error {
	cmd := c.client.Del(ctx, membershipKey(orgUUID, userUUID))
	if cmd.Err() != nil {
		return fmt.Errorf("redis delete error: %w", cmd.Err())
	}
	return nil
}

func (c *redisCache) get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.Get(ctx, key)
	if errors.Is(cmd.Err(), redis.Nil) {
		return nil, NotFound
	} else if cmd.Err() != nil {
		return nil, fmt.Errorf("redis error: %w", cmd.Err())
	}

	buf, err := cmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("redis bytes conversion error: %w", err)
	}
	return buf, err
}
