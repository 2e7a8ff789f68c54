package cache

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

type MockCache struct {
	mock.Mock
}

func NewMockCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCache) GetOrganizationBySubdomain(ctx context.Context, subdomain string) (*api.OrganizationResponse, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OrganizationResponse), args.Error(1)
}

func (m *MockCache) SetOrganizationBySubdomain(ctx context.Context, subdomain string, org *api.OrganizationResponse) error {
	args := m.Called(ctx, subdomain, org)
	return args.Error(0)
}

func (m *MockCache) GetMembershipRole(ctx context.Context, orgUUID string, userUUID string) (models.Role, error) {
	args := m.Called(ctx, orgUUID, userUUID)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *MockCache) SetMembershipRole(ctx context.Context, orgUUID string, userUUID string, role models.Role) error {
	args := m.Called(ctx, orgUUID, userUUID, role)
	return args.Error(0)
}

func (m *MockCache) DeleteMembershipRole(ctx context.Context, orgUUID string, userUUID string) error {
	args := m.Called(ctx, orgUUID, userUUID)
	return args.Error(0)
}
