package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type organizationDaoImpl struct {
	db *gorm.DB
}

func GetOrganizationDao(db *gorm.DB) OrganizationDao {
	return organizationDaoImpl{db: db}
}

func (d organizationDaoImpl) Create(ctx context.Context, ownerUUID string, orgReq api.OrganizationRequest) (api.OrganizationResponse, error) {
	var newOrg models.Organization

	if ownerUUID == "" {
		return api.OrganizationResponse{}, &ce.DaoError{BadValidation: true, Message: "Owner UUID cannot be blank"}
	}

	ApiFieldsToOrganizationModel(orgReq, &newOrg)

	// The creating user becomes the first owner in the same transaction, so
	// an organization can never exist without one.
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrg).Error; err != nil {
			return DBErrorToApi(err, "Organization", nil)
		}
		ownerMembership := models.Membership{
			OrganizationUUID: newOrg.UUID,
			UserUUID:         ownerUUID,
			Role:             models.RoleOwner,
		}
		if err := tx.Create(&ownerMembership).Error; err != nil {
			return DBErrorToApi(err, "Membership", nil)
		}
		return nil
	})
	if err != nil {
		return api.OrganizationResponse{}, err
	}

	var created api.OrganizationResponse
	OrganizationModelToApiFields(newOrg, &created)
	created.Role = string(models.RoleOwner)
	return created, nil
}

func (d organizationDaoImpl) Fetch(ctx context.Context, orgUUID string) (api.OrganizationResponse, error) {
	org, err := d.fetchOrganization(ctx, orgUUID)
	if err != nil {
		return api.OrganizationResponse{}, err
	}

	var resp api.OrganizationResponse
	OrganizationModelToApiFields(org, &resp)
	return resp, nil
}

func (d organizationDaoImpl) fetchOrganization(ctx context.Context, orgUUID string) (models.Organization, error) {
	found := models.Organization{}
	result := d.db.WithContext(ctx).
		Where("uuid = ?", UuidifyString(orgUUID)).
		First(&found)
	if result.Error != nil {
		return found, DBErrorToApi(result.Error, "Organization", &orgUUID)
	}
	return found, nil
}

func (d organizationDaoImpl) FetchBySubdomain(ctx context.Context, subdomain string) (api.OrganizationResponse, error) {
	found := models.Organization{}
	result := d.db.WithContext(ctx).
		Where("subdomain = ?", subdomain).
		First(&found)
	if result.Error != nil {
		daoErr := DBErrorToApi(result.Error, "Organization", nil)
		if daoErr.NotFound {
			daoErr.Message = "Organization with subdomain " + subdomain + " not found"
		}
		return api.OrganizationResponse{}, daoErr
	}

	var resp api.OrganizationResponse
	OrganizationModelToApiFields(found, &resp)
	return resp, nil
}

func (d organizationDaoImpl) List(ctx context.Context, userUUID string, paginationData api.PaginationData) (api.OrganizationCollectionResponse, int64, error) {
	var totalOrgs int64
	memberships := make([]models.Membership, 0)

	filteredDB := d.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("organization_members.user_uuid = ?", userUUID).
		Joins("inner join organizations on organizations.uuid = organization_members.organization_uuid")

	filteredDB.Count(&totalOrgs)
	if filteredDB.Error != nil {
		return api.OrganizationCollectionResponse{}, totalOrgs, filteredDB.Error
	}

	sortMap := map[string]string{
		"name":       "organizations.name",
		"subdomain":  "organizations.subdomain",
		"created_at": "organizations.created_at",
	}
	order := convertSortByToSQL(paginationData.SortBy, sortMap, "organizations.name asc")

	result := filteredDB.
		Preload("Organization").
		Order(order).
		Limit(paginationData.Limit).
		Offset(paginationData.Offset).
		Find(&memberships)
	if result.Error != nil {
		return api.OrganizationCollectionResponse{}, totalOrgs, result.Error
	}

	orgs := make([]api.OrganizationResponse, len(memberships))
	for i := 0; i < len(memberships); i++ {
		if memberships[i].Organization != nil {
			OrganizationModelToApiFields(*memberships[i].Organization, &orgs[i])
		}
		orgs[i].Role = string(memberships[i].Role)
	}

	return api.OrganizationCollectionResponse{Data: orgs}, totalOrgs, nil
}

func (d organizationDaoImpl) Update(ctx context.Context, orgUUID string, orgReq api.OrganizationRequest) error {
	org, err := d.fetchOrganization(ctx, orgUUID)
	if err != nil {
		return err
	}

	// Subdomain is fixed at creation, reject attempts to change it.
	if orgReq.Subdomain != nil && *orgReq.Subdomain != "" && *orgReq.Subdomain != org.Subdomain {
		return &ce.DaoError{BadValidation: true, Message: "Subdomain cannot be changed"}
	}

	ApiFieldsToOrganizationModel(orgReq, &org)
	if org.Name == "" {
		return &ce.DaoError{BadValidation: true, Message: "Name cannot be blank"}
	}

	if err := d.db.WithContext(ctx).Model(&org).Updates(org.MapForUpdate()).Error; err != nil {
		return DBErrorToApi(err, "Organization", &orgUUID)
	}
	return nil
}

func (d organizationDaoImpl) Delete(ctx context.Context, orgUUID string) error {
	org, err := d.fetchOrganization(ctx, orgUUID)
	if err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Delete(&org).Error; err != nil {
		return DBErrorToApi(err, "Organization", &orgUUID)
	}
	return nil
}

// SubdomainTaken is advisory only, creation still races under the unique
// index and reports AlreadyExists on conflict.
func (d organizationDaoImpl) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	var count int64
	result := d.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("subdomain = ?", subdomain).
		Count(&count)
	if result.Error != nil {
		return false, DBErrorToApi(result.Error, "Organization", nil)
	}
	return count > 0, nil
}

func ApiFieldsToOrganizationModel(apiOrg api.OrganizationRequest, org *models.Organization) {
	// Subdomain can only be set on creation, cannot be changed
	if org.UUID == "" && apiOrg.Subdomain != nil {
		org.Subdomain = *apiOrg.Subdomain
	}
	if apiOrg.Name != nil {
		org.Name = *apiOrg.Name
	}
	if apiOrg.Profile != nil {
		org.Profile = *apiOrg.Profile
	}
	if apiOrg.LogoURL != nil {
		org.LogoURL = *apiOrg.LogoURL
	}
}

func OrganizationModelToApiFields(org models.Organization, apiOrg *api.OrganizationResponse) {
	apiOrg.UUID = org.UUID
	apiOrg.Name = org.Name
	apiOrg.Subdomain = org.Subdomain
	apiOrg.Profile = org.Profile
	apiOrg.LogoURL = org.LogoURL
}
