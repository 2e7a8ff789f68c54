package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type DaoRegistry struct {
	Organization   OrganizationDao
	Membership     MembershipDao
	Domain         DomainDao
	User           UserDao
	TicketCategory TicketCategoryDao
	Ticket         TicketDao
	TicketResponse TicketResponseDao
	TicketActivity TicketActivityDao
	Analytics      AnalyticsDao
	Metrics        MetricsDao
}

func GetDaoRegistry(db *gorm.DB) *DaoRegistry {
	reg := DaoRegistry{
		Organization:   organizationDaoImpl{db: db},
		Membership:     membershipDaoImpl{db: db},
		Domain:         domainDaoImpl{db: db},
		User:           userDaoImpl{db: db},
		TicketCategory: ticketCategoryDaoImpl{db: db},
		Ticket:         ticketDaoImpl{db: db},
		TicketResponse: ticketResponseDaoImpl{db: db},
		TicketActivity: ticketActivityDaoImpl{db: db},
		Analytics:      analyticsDaoImpl{db: db},
		Metrics:        metricsDaoImpl{db: db},
	}
	return &reg
}

type OrganizationDao interface {
	// Create stores the organization and makes ownerUUID its first owner.
	Create(ctx context.Context, ownerUUID string, orgReq api.OrganizationRequest) (api.OrganizationResponse, error)
	Fetch(ctx context.Context, orgUUID string) (api.OrganizationResponse, error)
	FetchBySubdomain(ctx context.Context, subdomain string) (api.OrganizationResponse, error)
	// List returns the organizations userUUID belongs to, with the caller's role filled in.
	List(ctx context.Context, userUUID string, paginationData api.PaginationData) (api.OrganizationCollectionResponse, int64, error)
	Update(ctx context.Context, orgUUID string, orgReq api.OrganizationRequest) error
	Delete(ctx context.Context, orgUUID string) error
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
}

type MembershipDao interface {
	Create(ctx context.Context, orgUUID string, memberReq api.MembershipRequest) (api.MembershipResponse, error)
	Fetch(ctx context.Context, orgUUID string, uuid string) (api.MembershipResponse, error)
	List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.MembershipCollectionResponse, int64, error)
	UpdateRole(ctx context.Context, orgUUID string, uuid string, role models.Role) error
	Delete(ctx context.Context, orgUUID string, uuid string) error
	// RoleOf returns a NotFound DaoError when the user is not a member.
	RoleOf(ctx context.Context, orgUUID string, userUUID string) (models.Role, error)
}

type DomainDao interface {
	Create(ctx context.Context, orgUUID string, domainReq api.OrganizationDomainRequest) (api.OrganizationDomainResponse, error)
	List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.OrganizationDomainCollectionResponse, int64, error)
	Delete(ctx context.Context, orgUUID string, uuid string) error
	// AllowsEmail reports whether email may self-register: true when the
	// organization has no domains at all, or when the email's domain matches.
	AllowsEmail(ctx context.Context, orgUUID string, email string) (bool, error)
}

type UserDao interface {
	Fetch(ctx context.Context, uuid string) (models.User, error)
	FetchByEmail(ctx context.Context, email string) (models.User, error)
	// Upsert stores the identity provider's view of the user, updating the
	// profile fields when the record already exists.
	Upsert(ctx context.Context, user models.User) error
}

type TicketCategoryDao interface {
	Create(ctx context.Context, orgUUID string, catReq api.TicketCategoryRequest) (api.TicketCategoryResponse, error)
	Fetch(ctx context.Context, orgUUID string, uuid string) (api.TicketCategoryResponse, error)
	List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.TicketCategoryCollectionResponse, int64, error)
	Update(ctx context.Context, orgUUID string, uuid string, catReq api.TicketCategoryRequest) error
	Delete(ctx context.Context, orgUUID string, uuid string) error
}

type TicketDao interface {
	Create(ctx context.Context, orgUUID string, actorUUID *string, ticketReq api.TicketRequest) (api.TicketResponse, error)
	Fetch(ctx context.Context, orgUUID string, uuid string) (api.TicketResponse, error)
	FetchByReference(ctx context.Context, orgUUID string, referenceID string) (api.TicketResponse, error)
	List(ctx context.Context, orgUUID string, paginationData api.PaginationData, filterData api.TicketFilterData) (api.TicketCollectionResponse, int64, error)
	Update(ctx context.Context, orgUUID string, uuid string, actorUUID *string, ticketReq api.TicketRequest) error
	// Assign sets the assignee, or clears it when assignedTo is nil.
	Assign(ctx context.Context, orgUUID string, uuid string, actorUUID *string, assignedTo *string) error
	SetStatus(ctx context.Context, orgUUID string, uuid string, actorUUID *string, status models.TicketStatus, resolutionNotes string) error
	Delete(ctx context.Context, orgUUID string, uuid string) error
}

type TicketResponseDao interface {
	// Create appends a conversation entry. Entries from organization members
	// stamp the ticket's first response time if it is not yet set.
	Create(ctx context.Context, orgUUID string, ticketUUID string, fromMember bool, respReq api.TicketResponseRequest, userUUID *string, userEmail string) (api.TicketResponseItem, error)
	// List returns the conversation, oldest first. Internal notes are
	// omitted unless includeInternal is set.
	List(ctx context.Context, orgUUID string, ticketUUID string, paginationData api.PaginationData, includeInternal bool) (api.TicketResponseCollectionResponse, int64, error)
}

type TicketActivityDao interface {
	List(ctx context.Context, orgUUID string, ticketUUID string, paginationData api.PaginationData) (api.TicketActivityCollectionResponse, int64, error)
}

type AnalyticsDao interface {
	Summary(ctx context.Context, orgUUID string) (api.AnalyticsSummaryResponse, error)
}

type MetricsDao interface {
	OrganizationsCount(ctx context.Context) int
	TicketsCount(ctx context.Context) int
	OpenTicketsCount(ctx context.Context) int
	MembershipsCount(ctx context.Context) int
}
