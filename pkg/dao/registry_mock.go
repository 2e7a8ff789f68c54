package dao

import (
	"testing"
)

type MockDaoRegistry struct {
	Organization   MockOrganizationDao
	Membership     MockMembershipDao
	Domain         MockDomainDao
	User           MockUserDao
	TicketCategory MockTicketCategoryDao
	Ticket         MockTicketDao
	TicketResponse MockTicketResponseDao
	TicketActivity MockTicketActivityDao
	Analytics      MockAnalyticsDao
	Metrics        MockMetricsDao
}

func (m *MockDaoRegistry) ToDaoRegistry() *DaoRegistry {
	r := DaoRegistry{
		Organization:   &m.Organization,
		Membership:     &m.Membership,
		Domain:         &m.Domain,
		User:           &m.User,
		TicketCategory: &m.TicketCategory,
		Ticket:         &m.Ticket,
		TicketResponse: &m.TicketResponse,
		TicketActivity: &m.TicketActivity,
		Analytics:      &m.Analytics,
		Metrics:        &m.Metrics,
	}
	return &r
}

func GetMockDaoRegistry(t *testing.T) *MockDaoRegistry {
	reg := MockDaoRegistry{
		Organization:   *NewMockOrganizationDao(t),
		Membership:     *NewMockMembershipDao(t),
		Domain:         *NewMockDomainDao(t),
		User:           *NewMockUserDao(t),
		TicketCategory: *NewMockTicketCategoryDao(t),
		Ticket:         *NewMockTicketDao(t),
		TicketResponse: *NewMockTicketResponseDao(t),
		TicketActivity: *NewMockTicketActivityDao(t),
		Analytics:      *NewMockAnalyticsDao(t),
		Metrics:        *NewMockMetricsDao(t),
	}
	return &reg
}
