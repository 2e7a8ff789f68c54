package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type domainDaoImpl struct {
	db *gorm.DB
}

func GetDomainDao(db *gorm.DB) DomainDao {
	return domainDaoImpl{db: db}
}

func (d domainDaoImpl) Create(ctx context.Context, orgUUID string, domainReq api.OrganizationDomainRequest) (api.OrganizationDomainResponse, error) {
	domain := models.OrganizationDomain{
		OrganizationUUID: orgUUID,
	}
	if domainReq.Domain != nil {
		domain.Domain = *domainReq.Domain
	}

	if err := d.db.WithContext(ctx).Create(&domain).Error; err != nil {
		return api.OrganizationDomainResponse{}, DBErrorToApi(err, "Domain", nil)
	}

	return api.OrganizationDomainResponse{
		UUID:             domain.UUID,
		OrganizationUUID: domain.OrganizationUUID,
		Domain:           domain.Domain,
	}, nil
}

func (d domainDaoImpl) List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.OrganizationDomainCollectionResponse, int64, error) {
	var total int64
	domains := make([]models.OrganizationDomain, 0)

	filteredDB := d.db.WithContext(ctx).
		Model(&models.OrganizationDomain{}).
		Where("organization_uuid = ?", UuidifyString(orgUUID))

	filteredDB.Count(&total)
	if filteredDB.Error != nil {
		return api.OrganizationDomainCollectionResponse{}, total, filteredDB.Error
	}

	result := filteredDB.
		Order("domain asc").
		Limit(paginationData.Limit).
		Offset(paginationData.Offset).
		Find(&domains)
	if result.Error != nil {
		return api.OrganizationDomainCollectionResponse{}, total, result.Error
	}

	resp := make([]api.OrganizationDomainResponse, len(domains))
	for i := 0; i < len(domains); i++ {
		resp[i] = api.OrganizationDomainResponse{
			UUID:             domains[i].UUID,
			OrganizationUUID: domains[i].OrganizationUUID,
			Domain:           domains[i].Domain,
		}
	}
	return api.OrganizationDomainCollectionResponse{Data: resp}, total, nil
}

func (d domainDaoImpl) Delete(ctx context.Context, orgUUID string, uuid string) error {
	found := models.OrganizationDomain{}
	result := d.db.WithContext(ctx).
		Where("uuid = ? AND organization_uuid = ?", UuidifyString(uuid), UuidifyString(orgUUID)).
		First(&found)
	if result.Error != nil {
		return DBErrorToApi(result.Error, "Domain", &uuid)
	}
	if err := d.db.WithContext(ctx).Delete(&found).Error; err != nil {
		return DBErrorToApi(err, "Domain", &uuid)
	}
	return nil
}

func (d domainDaoImpl) AllowsEmail(ctx context.Context, orgUUID string, email string) (bool, error) {
	var total int64
	pdb := d.db.WithContext(ctx).
		Model(&models.OrganizationDomain{}).
		Where("organization_uuid = ?", UuidifyString(orgUUID))
	if err := pdb.Count(&total).Error; err != nil {
		return false, DBErrorToApi(err, "Domain", nil)
	}
	// No configured domains means no restriction.
	if total == 0 {
		return true, nil
	}

	domain := emailDomain(email)
	if domain == "" {
		return false, nil
	}

	var matches int64
	result := d.db.WithContext(ctx).
		Model(&models.OrganizationDomain{}).
		Where("organization_uuid = ? AND domain = ?", UuidifyString(orgUUID), domain).
		Count(&matches)
	if result.Error != nil {
		return false, DBErrorToApi(result.Error, "Domain", nil)
	}
	return matches > 0, nil
}
