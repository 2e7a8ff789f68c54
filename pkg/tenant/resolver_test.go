package tenant

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/cache"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
)

type ResolverSuite struct {
	suite.Suite
	reg   *dao.MockDaoRegistry
	cache *cache.MockCache
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (suite *ResolverSuite) SetupTest() {
	suite.reg = dao.GetMockDaoRegistry(suite.T())
	suite.cache = cache.NewMockCache(suite.T())
}

func (suite *ResolverSuite) resolver() Resolver {
	return NewResolver(suite.reg.ToDaoRegistry(), suite.cache)
}

func (suite *ResolverSuite) host(subdomain string) string {
	return subdomain + "." + config.Get().Tenancy.RootDomain
}

func (suite *ResolverSuite) TestResolveCacheMissThenDatabaseHit() {
	t := suite.T()
	ctx := context.Background()
	org := api.OrganizationResponse{UUID: uuid.NewString(), Name: "Acme", Subdomain: "acme"}

	suite.cache.On("GetOrganizationBySubdomain", ctx, "acme").Return(nil, cache.NotFound)
	suite.reg.Organization.On("FetchBySubdomain", ctx, "acme").Return(org, nil)
	suite.cache.On("SetOrganizationBySubdomain", ctx, "acme", &org).Return(nil)

	res, err := suite.resolver().Resolve(ctx, suite.host("acme"))
	assert.NoError(t, err)
	assert.Equal(t, OutcomeResolved, res.Outcome)
	assert.Equal(t, "acme", res.Subdomain)
	assert.Equal(t, org.UUID, res.Organization.UUID)
}

func (suite *ResolverSuite) TestResolveCacheHit() {
	t := suite.T()
	ctx := context.Background()
	org := api.OrganizationResponse{UUID: uuid.NewString(), Subdomain: "acme"}

	suite.cache.On("GetOrganizationBySubdomain", ctx, "acme").Return(&org, nil)

	res, err := suite.resolver().Resolve(ctx, suite.host("acme"))
	assert.NoError(t, err)
	assert.Equal(t, OutcomeResolved, res.Outcome)
	assert.Equal(t, org.UUID, res.Organization.UUID)
	suite.reg.Organization.AssertNotCalled(t, "FetchBySubdomain")
}

func (suite *ResolverSuite) TestResolveCachedMiss() {
	t := suite.T()
	ctx := context.Background()

	suite.cache.On("GetOrganizationBySubdomain", ctx, "ghost").Return(nil, nil)

	res, err := suite.resolver().Resolve(ctx, suite.host("ghost"))
	assert.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, res.Outcome)
	suite.reg.Organization.AssertNotCalled(t, "FetchBySubdomain")
}

func (suite *ResolverSuite) TestResolveUnknownSubdomain() {
	t := suite.T()
	ctx := context.Background()

	suite.cache.On("GetOrganizationBySubdomain", ctx, "ghost").Return(nil, cache.NotFound)
	suite.reg.Organization.On("FetchBySubdomain", ctx, "ghost").
		Return(api.OrganizationResponse{}, &ce.DaoError{NotFound: true, Message: "Organization with subdomain ghost not found"})
	suite.cache.On("SetOrganizationBySubdomain", ctx, "ghost", (*api.OrganizationResponse)(nil)).Return(nil)

	res, err := suite.resolver().Resolve(ctx, suite.host("ghost"))
	assert.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, res.Outcome)
	assert.Equal(t, "ghost", res.Subdomain)
}

func (suite *ResolverSuite) TestResolveTransientError() {
	t := suite.T()
	ctx := context.Background()

	suite.cache.On("GetOrganizationBySubdomain", ctx, "acme").Return(nil, cache.NotFound)
	suite.reg.Organization.On("FetchBySubdomain", ctx, "acme").
		Return(api.OrganizationResponse{}, fmt.Errorf("connection refused"))

	_, err := suite.resolver().Resolve(ctx, suite.host("acme"))
	assert.Error(t, err)
}

func (suite *ResolverSuite) TestResolvePassThrough() {
	t := suite.T()
	ctx := context.Background()

	for _, host := range []string{
		config.Get().Tenancy.RootDomain,
		"www." + config.Get().Tenancy.RootDomain,
		"localhost",
		"elsewhere.example.org",
	} {
		res, err := suite.resolver().Resolve(ctx, host)
		assert.NoError(t, err)
		assert.Equal(t, OutcomePassThrough, res.Outcome, "host %q", host)
		assert.Nil(t, res.Organization)
	}
}

// Reserved labels never reach the cache or the database and resolve with
// their own outcome so the resolution metric can count them apart from
// ordinary pass-through traffic.
func (suite *ResolverSuite) TestResolveReservedSubdomain() {
	t := suite.T()
	ctx := context.Background()

	for _, subdomain := range []string{"api", "admin", "status"} {
		res, err := suite.resolver().Resolve(ctx, suite.host(subdomain))
		assert.NoError(t, err)
		assert.Equal(t, OutcomeReserved, res.Outcome, "subdomain %q", subdomain)
		assert.Equal(t, subdomain, res.Subdomain)
		assert.Nil(t, res.Organization)
	}
	suite.cache.AssertNotCalled(t, "GetOrganizationBySubdomain")
	suite.reg.Organization.AssertNotCalled(t, "FetchBySubdomain")
}
