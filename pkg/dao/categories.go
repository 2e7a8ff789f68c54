package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type ticketCategoryDaoImpl struct {
	db *gorm.DB
}

func GetTicketCategoryDao(db *gorm.DB) TicketCategoryDao {
	return ticketCategoryDaoImpl{db: db}
}

func (d ticketCategoryDaoImpl) Create(ctx context.Context, orgUUID string, catReq api.TicketCategoryRequest) (api.TicketCategoryResponse, error) {
	var category models.TicketCategory
	category.OrganizationUUID = orgUUID
	ApiFieldsToCategoryModel(catReq, &category)

	if err := d.db.WithContext(ctx).Create(&category).Error; err != nil {
		return api.TicketCategoryResponse{}, DBErrorToApi(err, "Category", nil)
	}

	var created api.TicketCategoryResponse
	CategoryModelToApiFields(category, &created)
	return created, nil
}

func (d ticketCategoryDaoImpl) Fetch(ctx context.Context, orgUUID string, uuid string) (api.TicketCategoryResponse, error) {
	category, err := d.fetchCategory(ctx, orgUUID, uuid)
	if err != nil {
		return api.TicketCategoryResponse{}, err
	}
	var resp api.TicketCategoryResponse
	CategoryModelToApiFields(category, &resp)
	return resp, nil
}

func (d ticketCategoryDaoImpl) fetchCategory(ctx context.Context, orgUUID string, uuid string) (models.TicketCategory, error) {
	found := models.TicketCategory{}
	result := d.db.WithContext(ctx).
		Where("uuid = ? AND organization_uuid = ?", UuidifyString(uuid), UuidifyString(orgUUID)).
		First(&found)
	if result.Error != nil {
		return found, DBErrorToApi(result.Error, "Category", &uuid)
	}
	return found, nil
}

func (d ticketCategoryDaoImpl) List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.TicketCategoryCollectionResponse, int64, error) {
	var total int64
	categories := make([]models.TicketCategory, 0)

	filteredDB := d.db.WithContext(ctx).
		Model(&models.TicketCategory{}).
		Where("organization_uuid = ?", UuidifyString(orgUUID))

	filteredDB.Count(&total)
	if filteredDB.Error != nil {
		return api.TicketCategoryCollectionResponse{}, total, filteredDB.Error
	}

	sortMap := map[string]string{
		"name":       "name",
		"sort_order": "sort_order",
		"created_at": "created_at",
	}
	order := convertSortByToSQL(paginationData.SortBy, sortMap, "sort_order asc, name asc")

	result := filteredDB.
		Order(order).
		Limit(paginationData.Limit).
		Offset(paginationData.Offset).
		Find(&categories)
	if result.Error != nil {
		return api.TicketCategoryCollectionResponse{}, total, result.Error
	}

	resp := make([]api.TicketCategoryResponse, len(categories))
	for i := 0; i < len(categories); i++ {
		CategoryModelToApiFields(categories[i], &resp[i])
	}
	return api.TicketCategoryCollectionResponse{Data: resp}, total, nil
}

func (d ticketCategoryDaoImpl) Update(ctx context.Context, orgUUID string, uuid string, catReq api.TicketCategoryRequest) error {
	category, err := d.fetchCategory(ctx, orgUUID, uuid)
	if err != nil {
		return err
	}

	ApiFieldsToCategoryModel(catReq, &category)
	if category.Name == "" {
		return &ce.DaoError{BadValidation: true, Message: "Name cannot be blank"}
	}

	if err := d.db.WithContext(ctx).Model(&category).Updates(category.MapForUpdate()).Error; err != nil {
		return DBErrorToApi(err, "Category", &uuid)
	}
	return nil
}

func (d ticketCategoryDaoImpl) Delete(ctx context.Context, orgUUID string, uuid string) error {
	category, err := d.fetchCategory(ctx, orgUUID, uuid)
	if err != nil {
		return err
	}

	// Tickets keep no dangling reference, the fk sets category_uuid to null.
	if err := d.db.WithContext(ctx).Delete(&category).Error; err != nil {
		return DBErrorToApi(err, "Category", &uuid)
	}
	return nil
}

func ApiFieldsToCategoryModel(apiCat api.TicketCategoryRequest, category *models.TicketCategory) {
	if apiCat.Name != nil {
		category.Name = *apiCat.Name
	}
	if apiCat.Description != nil {
		category.Description = *apiCat.Description
	}
	if apiCat.Color != nil {
		category.Color = *apiCat.Color
	}
	if apiCat.SortOrder != nil {
		category.SortOrder = *apiCat.SortOrder
	}
	if apiCat.IsActive != nil {
		category.IsActive = *apiCat.IsActive
	}
}

func CategoryModelToApiFields(category models.TicketCategory, apiCat *api.TicketCategoryResponse) {
	apiCat.UUID = category.UUID
	apiCat.OrganizationUUID = category.OrganizationUUID
	apiCat.Name = category.Name
	apiCat.Description = category.Description
	apiCat.Color = category.Color
	apiCat.SortOrder = category.SortOrder
	apiCat.IsActive = category.IsActive
}
