package dao

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

// mockConstructorTestingT is the subset of *testing.T the mock constructors
// need.
type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockOrganizationDao struct {
	mock.Mock
}

func NewMockOrganizationDao(t mockConstructorTestingT) *MockOrganizationDao {
	m := &MockOrganizationDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrganizationDao) Create(ctx context.Context, ownerUUID string, orgReq api.OrganizationRequest) (api.OrganizationResponse, error) {
	args := m.Called(ctx, ownerUUID, orgReq)
	return args.Get(0).(api.OrganizationResponse), args.Error(1)
}

func (m *MockOrganizationDao) Fetch(ctx context.Context, orgUUID string) (api.OrganizationResponse, error) {
	args := m.Called(ctx, orgUUID)
	return args.Get(0).(api.OrganizationResponse), args.Error(1)
}

func (m *MockOrganizationDao) FetchBySubdomain(ctx context.Context, subdomain string) (api.OrganizationResponse, error) {
	args := m.Called(ctx, subdomain)
	return args.Get(0).(api.OrganizationResponse), args.Error(1)
}

func (m *MockOrganizationDao) List(ctx context.Context, userUUID string, paginationData api.PaginationData) (api.OrganizationCollectionResponse, int64, error) {
	args := m.Called(ctx, userUUID, paginationData)
	return args.Get(0).(api.OrganizationCollectionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrganizationDao) Update(ctx context.Context, orgUUID string, orgReq api.OrganizationRequest) error {
	args := m.Called(ctx, orgUUID, orgReq)
	return args.Error(0)
}

func (m *MockOrganizationDao) Delete(ctx context.Context, orgUUID string) error {
	args := m.Called(ctx, orgUUID)
	return args.Error(0)
}

func (m *MockOrganizationDao) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	args := m.Called(ctx, subdomain)
	return args.Bool(0), args.Error(1)
}

type MockMembershipDao struct {
	mock.Mock
}

func NewMockMembershipDao(t mockConstructorTestingT) *MockMembershipDao {
	m := &MockMembershipDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMembershipDao) Create(ctx context.Context, orgUUID string, memberReq api.MembershipRequest) (api.MembershipResponse, error) {
	args := m.Called(ctx, orgUUID, memberReq)
	return args.Get(0).(api.MembershipResponse), args.Error(1)
}

func (m *MockMembershipDao) Fetch(ctx context.Context, orgUUID string, uuid string) (api.MembershipResponse, error) {
	args := m.Called(ctx, orgUUID, uuid)
	return args.Get(0).(api.MembershipResponse), args.Error(1)
}

func (m *MockMembershipDao) List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.MembershipCollectionResponse, int64, error) {
	args := m.Called(ctx, orgUUID, paginationData)
	return args.Get(0).(api.MembershipCollectionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockMembershipDao) UpdateRole(ctx context.Context, orgUUID string, uuid string, role models.Role) error {
	args := m.Called(ctx, orgUUID, uuid, role)
	return args.Error(0)
}

func (m *MockMembershipDao) Delete(ctx context.Context, orgUUID string, uuid string) error {
	args := m.Called(ctx, orgUUID, uuid)
	return args.Error(0)
}

func (m *MockMembershipDao) RoleOf(ctx context.Context, orgUUID string, userUUID string) (models.Role, error) {
	args := m.Called(ctx, orgUUID, userUUID)
	return args.Get(0).(models.Role), args.Error(1)
}

type MockDomainDao struct {
	mock.Mock
}

func NewMockDomainDao(t mockConstructorTestingT) *MockDomainDao {
	m := &MockDomainDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDomainDao) Create(ctx context.Context, orgUUID string, domainReq api.OrganizationDomainRequest) (api.OrganizationDomainResponse, error) {
	args := m.Called(ctx, orgUUID, domainReq)
	return args.Get(0).(api.OrganizationDomainResponse), args.Error(1)
}

func (m *MockDomainDao) List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.OrganizationDomainCollectionResponse, int64, error) {
	args := m.Called(ctx, orgUUID, paginationData)
	return args.Get(0).(api.OrganizationDomainCollectionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockDomainDao) Delete(ctx context.Context, orgUUID string, uuid string) error {
	args := m.Called(ctx, orgUUID, uuid)
	return args.Error(0)
}

func (m *MockDomainDao) AllowsEmail(ctx context.Context, orgUUID string, email string) (bool, error) {
	args := m.Called(ctx, orgUUID, email)
	return args.Bool(0), args.Error(1)
}

type MockUserDao struct {
	mock.Mock
}

func NewMockUserDao(t mockConstructorTestingT) *MockUserDao {
	m := &MockUserDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserDao) Fetch(ctx context.Context, uuid string) (models.User, error) {
	args := m.Called(ctx, uuid)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserDao) FetchByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserDao) Upsert(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockTicketCategoryDao struct {
	mock.Mock
}

func NewMockTicketCategoryDao(t mockConstructorTestingT) *MockTicketCategoryDao {
	m := &MockTicketCategoryDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketCategoryDao) Create(ctx context.Context, orgUUID string, catReq api.TicketCategoryRequest) (api.TicketCategoryResponse, error) {
	args := m.Called(ctx, orgUUID, catReq)
	return args.Get(0).(api.TicketCategoryResponse), args.Error(1)
}

func (m *MockTicketCategoryDao) Fetch(ctx context.Context, orgUUID string, uuid string) (api.TicketCategoryResponse, error) {
	args := m.Called(ctx, orgUUID, uuid)
	return args.Get(0).(api.TicketCategoryResponse), args.Error(1)
}

func (m *MockTicketCategoryDao) List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.TicketCategoryCollectionResponse, int64, error) {
	args := m.Called(ctx, orgUUID, paginationData)
	return args.Get(0).(api.TicketCategoryCollectionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockTicketCategoryDao) Update(ctx context.Context, orgUUID string, uuid string, catReq api.TicketCategoryRequest) error {
	args := m.Called(ctx, orgUUID, uuid, catReq)
	return args.Error(0)
}

func (m *MockTicketCategoryDao) Delete(ctx context.Context, orgUUID string, uuid string) error {
	args := m.Called(ctx, orgUUID, uuid)
	return args.Error(0)
}

type MockTicketDao struct {
	mock.Mock
}

func NewMockTicketDao(t mockConstructorTestingT) *MockTicketDao {
	m := &MockTicketDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketDao) Create(ctx context.Context, orgUUID string, actorUUID *string, ticketReq api.TicketRequest) (api.TicketResponse, error) {
	args := m.Called(ctx, orgUUID, actorUUID, ticketReq)
	return args.Get(0).(api.TicketResponse), args.Error(1)
}

func (m *MockTicketDao) Fetch(ctx context.Context, orgUUID string, uuid string) (api.TicketResponse, error) {
	args := m.Called(ctx, orgUUID, uuid)
	return args.Get(0).(api.TicketResponse), args.Error(1)
}

func (m *MockTicketDao) FetchByReference(ctx context.Context, orgUUID string, referenceID string) (api.TicketResponse, error) {
	args := m.Called(ctx, orgUUID, referenceID)
	return args.Get(0).(api.TicketResponse), args.Error(1)
}

func (m *MockTicketDao) List(ctx context.Context, orgUUID string, paginationData api.PaginationData, filterData api.TicketFilterData) (api.TicketCollectionResponse, int64, error) {
	args := m.Called(ctx, orgUUID, paginationData, filterData)
	return args.Get(0).(api.TicketCollectionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockTicketDao) Update(ctx context.Context, orgUUID string, uuid string, actorUUID *string, ticketReq api.TicketRequest) error {
	args := m.Called(ctx, orgUUID, uuid, actorUUID, ticketReq)
	return args.Error(0)
}

func (m *MockTicketDao) Assign(ctx context.Context, orgUUID string, uuid string, actorUUID *string, assignedTo *string) error {
	args := m.Called(ctx, orgUUID, uuid, actorUUID, assignedTo)
	return args.Error(0)
}

func (m *MockTicketDao) SetStatus(ctx context.Context, orgUUID string, uuid string, actorUUID *string, status models.TicketStatus, resolutionNotes string) error {
	args := m.Called(ctx, orgUUID, uuid, actorUUID, status, resolutionNotes)
	return args.Error(0)
}

func (m *MockTicketDao) Delete(ctx context.Context, orgUUID string, uuid string) error {
	args := m.Called(ctx, orgUUID, uuid)
	return args.Error(0)
}

type MockTicketResponseDao struct {
	mock.Mock
}

func NewMockTicketResponseDao(t mockConstructorTestingT) *MockTicketResponseDao {
	m := &MockTicketResponseDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketResponseDao) Create(ctx context.Context, orgUUID string, ticketUUID string, fromMember bool, respReq api.TicketResponseRequest, userUUID *string, userEmail string) (api.TicketResponseItem, error) {
	args := m.Called(ctx, orgUUID, ticketUUID, fromMember, respReq, userUUID, userEmail)
	return args.Get(0).(api.TicketResponseItem), args.Error(1)
}

func (m *MockTicketResponseDao) List(ctx context.Context, orgUUID string, ticketUUID string, paginationData api.PaginationData, includeInternal bool) (api.TicketResponseCollectionResponse, int64, error) {
	args := m.Called(ctx, orgUUID, ticketUUID, paginationData, includeInternal)
	return args.Get(0).(api.TicketResponseCollectionResponse), args.Get(1).(int64), args.Error(2)
}

type MockTicketActivityDao struct {
	mock.Mock
}

func NewMockTicketActivityDao(t mockConstructorTestingT) *MockTicketActivityDao {
	m := &MockTicketActivityDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketActivityDao) List(ctx context.Context, orgUUID string, ticketUUID string, paginationData api.PaginationData) (api.TicketActivityCollectionResponse, int64, error) {
	args := m.Called(ctx, orgUUID, ticketUUID, paginationData)
	return args.Get(0).(api.TicketActivityCollectionResponse), args.Get(1).(int64), args.Error(2)
}

type MockAnalyticsDao struct {
	mock.Mock
}

func NewMockAnalyticsDao(t mockConstructorTestingT) *MockAnalyticsDao {
	m := &MockAnalyticsDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAnalyticsDao) Summary(ctx context.Context, orgUUID string) (api.AnalyticsSummaryResponse, error) {
	args := m.Called(ctx, orgUUID)
	return args.Get(0).(api.AnalyticsSummaryResponse), args.Error(1)
}

type MockMetricsDao struct {
	mock.Mock
}

func NewMockMetricsDao(t mockConstructorTestingT) *MockMetricsDao {
	m := &MockMetricsDao{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMetricsDao) OrganizationsCount(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockMetricsDao) TicketsCount(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockMetricsDao) OpenTicketsCount(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockMetricsDao) MembershipsCount(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}
