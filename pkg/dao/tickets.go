package dao

import (
	"context"
	"time"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type ticketDaoImpl struct {
	db *gorm.DB
}

func GetTicketDao(db *gorm.DB) TicketDao {
	return ticketDaoImpl{db: db}
}

// referenceIdRetries bounds how often Create retries on a reference id
// collision before giving up.
const referenceIdRetries = 3

func (d ticketDaoImpl) Create(ctx context.Context, orgUUID string, actorUUID *string, ticketReq api.TicketRequest) (api.TicketResponse, error) {
	var ticket models.Ticket
	ticket.OrganizationUUID = orgUUID
	ApiFieldsToTicketModel(ticketReq, &ticket)

	if ticket.CategoryUUID != nil {
		categoryDao := ticketCategoryDaoImpl{db: d.db}
		if _, err := categoryDao.fetchCategory(ctx, orgUUID, *ticket.CategoryUUID); err != nil {
			return api.TicketResponse{}, err
		}
	}

	var err error
	for attempt := 0; attempt < referenceIdRetries; attempt++ {
		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&ticket).Error; err != nil {
				return err
			}
			activity := models.TicketActivity{
				TicketUUID:   ticket.UUID,
				ActivityType: models.ActivityCreated,
				UserUUID:     actorUUID,
				NewValue:     map[string]any{"status": string(ticket.Status)},
			}
			return tx.Create(&activity).Error
		})
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			return api.TicketResponse{}, DBErrorToApi(err, "Ticket", nil)
		}
		// Reference id collided, generate a fresh one and retry.
		ticket.UUID = ""
		ticket.ReferenceID = models.NewTicketReferenceID()
	}
	if err != nil {
		return api.TicketResponse{}, DBErrorToApi(err, "Ticket", nil)
	}

	return d.Fetch(ctx, orgUUID, ticket.UUID)
}

func (d ticketDaoImpl) Fetch(ctx context.Context, orgUUID string, uuid string) (api.TicketResponse, error) {
	ticket, err := d.fetchTicket(ctx, orgUUID, uuid)
	if err != nil {
		return api.TicketResponse{}, err
	}
	var resp api.TicketResponse
	TicketModelToApiFields(ticket, &resp)
	return resp, nil
}

func (d ticketDaoImpl) fetchTicket(ctx context.Context, orgUUID string, uuid string) (models.Ticket, error) {
	found := models.Ticket{}
	result := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Assignee").
		Where("uuid = ? AND organization_uuid = ?", UuidifyString(uuid), UuidifyString(orgUUID)).
		First(&found)
	if result.Error != nil {
		return found, DBErrorToApi(result.Error, "Ticket", &uuid)
	}
	return found, nil
}

func (d ticketDaoImpl) FetchByReference(ctx context.Context, orgUUID string, referenceID string) (api.TicketResponse, error) {
	found := models.Ticket{}
	result := d.db.WithContext(ctx).
		Preload("Category").
		Preload("Assignee").
		Where("reference_id = ? AND organization_uuid = ?", referenceID, UuidifyString(orgUUID)).
		First(&found)
	if result.Error != nil {
		daoErr := DBErrorToApi(result.Error, "Ticket", nil)
		if daoErr.NotFound {
			daoErr.Message = "Ticket " + referenceID + " not found"
		}
		return api.TicketResponse{}, daoErr
	}
	var resp api.TicketResponse
	TicketModelToApiFields(found, &resp)
	return resp, nil
}

func (d ticketDaoImpl) List(ctx context.Context, orgUUID string, paginationData api.PaginationData, filterData api.TicketFilterData) (api.TicketCollectionResponse, int64, error) {
	var totalTickets int64
	tickets := make([]models.Ticket, 0)

	filteredDB := d.filteredDbForList(d.db.WithContext(ctx), orgUUID, filterData)

	filteredDB.Model(&models.Ticket{}).Count(&totalTickets)
	if filteredDB.Error != nil {
		return api.TicketCollectionResponse{}, totalTickets, filteredDB.Error
	}

	sortMap := map[string]string{
		"subject":    "subject",
		"status":     "status",
		"priority":   "priority",
		"created_at": "tickets.created_at",
		"updated_at": "tickets.updated_at",
		"due_date":   "due_date",
	}
	order := convertSortByToSQL(paginationData.SortBy, sortMap, "tickets.created_at desc")

	result := filteredDB.
		Preload("Category").
		Preload("Assignee").
		Order(order).
		Limit(paginationData.Limit).
		Offset(paginationData.Offset).
		Find(&tickets)
	if result.Error != nil {
		return api.TicketCollectionResponse{}, totalTickets, result.Error
	}

	resp := make([]api.TicketResponse, len(tickets))
	for i := 0; i < len(tickets); i++ {
		TicketModelToApiFields(tickets[i], &resp[i])
	}
	return api.TicketCollectionResponse{Data: resp}, totalTickets, nil
}

func (d ticketDaoImpl) filteredDbForList(filteredDB *gorm.DB, orgUUID string, filterData api.TicketFilterData) *gorm.DB {
	filteredDB = filteredDB.Where("tickets.organization_uuid = ?", UuidifyString(orgUUID))

	if filterData.Status != "" {
		filteredDB = filteredDB.Where("status = ?", filterData.Status)
	}
	if filterData.Priority != "" {
		filteredDB = filteredDB.Where("priority = ?", filterData.Priority)
	}
	if filterData.CategoryUUID != "" {
		filteredDB = filteredDB.Where("category_uuid = ?", UuidifyString(filterData.CategoryUUID))
	}
	if filterData.AssignedTo != "" {
		if filterData.AssignedTo == "none" {
			filteredDB = filteredDB.Where("assigned_to IS NULL")
		} else {
			filteredDB = filteredDB.Where("assigned_to = ?", UuidifyString(filterData.AssignedTo))
		}
	}
	if filterData.Search != "" {
		containsSearch := "%" + filterData.Search + "%"
		filteredDB = filteredDB.
			Where("subject ILIKE ? OR description ILIKE ? OR reference_id ILIKE ? OR requester_email ILIKE ?",
				containsSearch, containsSearch, containsSearch, containsSearch)
	}

	return filteredDB
}

func (d ticketDaoImpl) Update(ctx context.Context, orgUUID string, uuid string, actorUUID *string, ticketReq api.TicketRequest) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := d.fetchTicket(ctx, orgUUID, uuid)
		if err != nil {
			return err
		}

		oldPriority := ticket.Priority
		oldCategory := ticket.CategoryUUID

		ApiFieldsToTicketModel(ticketReq, &ticket)
		if ticket.Subject == "" {
			return &ce.DaoError{BadValidation: true, Message: "Subject cannot be blank"}
		}
		if !ticket.Priority.Valid() {
			return &ce.DaoError{BadValidation: true, Message: "Unknown ticket priority"}
		}
		if ticket.CategoryUUID != nil && (oldCategory == nil || *oldCategory != *ticket.CategoryUUID) {
			categoryDao := ticketCategoryDaoImpl{db: d.db}
			if _, err := categoryDao.fetchCategory(ctx, orgUUID, *ticket.CategoryUUID); err != nil {
				return err
			}
		}

		ticket.Category = nil
		ticket.Assignee = nil
		if err := tx.Model(&ticket).Updates(ticket.MapForUpdate()).Error; err != nil {
			return DBErrorToApi(err, "Ticket", &uuid)
		}

		if ticket.Priority != oldPriority {
			activity := models.TicketActivity{
				TicketUUID:   ticket.UUID,
				ActivityType: models.ActivityPriorityChanged,
				UserUUID:     actorUUID,
				OldValue:     map[string]any{"priority": string(oldPriority)},
				NewValue:     map[string]any{"priority": string(ticket.Priority)},
			}
			if err := tx.Create(&activity).Error; err != nil {
				return DBErrorToApi(err, "Ticket", &uuid)
			}
		}
		if changedCategory(oldCategory, ticket.CategoryUUID) {
			activity := models.TicketActivity{
				TicketUUID:   ticket.UUID,
				ActivityType: models.ActivityCategorized,
				UserUUID:     actorUUID,
				OldValue:     uuidValue("category_uuid", oldCategory),
				NewValue:     uuidValue("category_uuid", ticket.CategoryUUID),
			}
			if err := tx.Create(&activity).Error; err != nil {
				return DBErrorToApi(err, "Ticket", &uuid)
			}
		}
		return nil
	})
}

func (d ticketDaoImpl) Assign(ctx context.Context, orgUUID string, uuid string, actorUUID *string, assignedTo *string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := d.fetchTicket(ctx, orgUUID, uuid)
		if err != nil {
			return err
		}

		// The assignee must be a member of the same organization.
		if assignedTo != nil {
			var memberCount int64
			result := tx.Model(&models.Membership{}).
				Where("organization_uuid = ? AND user_uuid = ?", UuidifyString(orgUUID), *assignedTo).
				Count(&memberCount)
			if result.Error != nil {
				return DBErrorToApi(result.Error, "Membership", nil)
			}
			if memberCount == 0 {
				return &ce.DaoError{BadValidation: true, Message: "Assignee is not a member of this organization"}
			}
		}

		oldAssignee := ticket.AssignedTo
		activityType := models.ActivityAssigned
		if assignedTo == nil {
			activityType = models.ActivityUnassigned
		}

		if err := tx.Model(&ticket).Update("assigned_to", assignedTo).Error; err != nil {
			return DBErrorToApi(err, "Ticket", &uuid)
		}

		activity := models.TicketActivity{
			TicketUUID:   ticket.UUID,
			ActivityType: activityType,
			UserUUID:     actorUUID,
			OldValue:     uuidValue("assigned_to", oldAssignee),
			NewValue:     uuidValue("assigned_to", assignedTo),
		}
		if err := tx.Create(&activity).Error; err != nil {
			return DBErrorToApi(err, "Ticket", &uuid)
		}
		return nil
	})
}

func (d ticketDaoImpl) SetStatus(ctx context.Context, orgUUID string, uuid string, actorUUID *string, status models.TicketStatus, resolutionNotes string) error {
	if !status.Valid() {
		return &ce.DaoError{BadValidation: true, Message: "Unknown ticket status"}
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := d.fetchTicket(ctx, orgUUID, uuid)
		if err != nil {
			return err
		}

		oldStatus := ticket.Status
		if oldStatus == status {
			return nil
		}

		now := time.Now()
		updates := map[string]interface{}{"status": status}
		switch status {
		case models.StatusResolved:
			updates["resolved_at"] = &now
			if resolutionNotes != "" {
				updates["resolution_notes"] = resolutionNotes
			}
		case models.StatusClosed:
			updates["closed_at"] = &now
			if resolutionNotes != "" {
				updates["resolution_notes"] = resolutionNotes
			}
		default:
			// Reopening clears the terminal timestamps.
			if oldStatus == models.StatusResolved || oldStatus == models.StatusClosed {
				updates["resolved_at"] = nil
				updates["closed_at"] = nil
			}
		}

		if err := tx.Model(&ticket).Updates(updates).Error; err != nil {
			return DBErrorToApi(err, "Ticket", &uuid)
		}

		activityType := models.ActivityStatusChanged
		switch {
		case status == models.StatusResolved:
			activityType = models.ActivityResolved
		case status == models.StatusClosed:
			activityType = models.ActivityClosed
		case oldStatus == models.StatusResolved || oldStatus == models.StatusClosed:
			activityType = models.ActivityReopened
		}

		activity := models.TicketActivity{
			TicketUUID:   ticket.UUID,
			ActivityType: activityType,
			UserUUID:     actorUUID,
			OldValue:     map[string]any{"status": string(oldStatus)},
			NewValue:     map[string]any{"status": string(status)},
		}
		if err := tx.Create(&activity).Error; err != nil {
			return DBErrorToApi(err, "Ticket", &uuid)
		}
		return nil
	})
}

func (d ticketDaoImpl) Delete(ctx context.Context, orgUUID string, uuid string) error {
	ticket, err := d.fetchTicket(ctx, orgUUID, uuid)
	if err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Delete(&ticket).Error; err != nil {
		return DBErrorToApi(err, "Ticket", &uuid)
	}
	return nil
}

func changedCategory(old *string, updated *string) bool {
	if old == nil && updated == nil {
		return false
	}
	if old == nil || updated == nil {
		return true
	}
	return *old != *updated
}

func uuidValue(key string, value *string) map[string]any {
	if value == nil {
		return nil
	}
	return map[string]any{key: *value}
}

func ApiFieldsToTicketModel(apiTicket api.TicketRequest, ticket *models.Ticket) {
	// Source can only be set on creation, cannot be changed
	if ticket.UUID == "" && apiTicket.Source != nil {
		ticket.Source = models.TicketSource(*apiTicket.Source)
	}

	if apiTicket.Subject != nil {
		ticket.Subject = *apiTicket.Subject
	}
	if apiTicket.Description != nil {
		ticket.Description = *apiTicket.Description
	}
	if apiTicket.Priority != nil && *apiTicket.Priority != "" {
		ticket.Priority = models.TicketPriority(*apiTicket.Priority)
	}
	if apiTicket.RequesterEmail != nil && *apiTicket.RequesterEmail != "" {
		ticket.RequesterEmail = *apiTicket.RequesterEmail
	}
	if apiTicket.CategoryUUID != nil {
		if *apiTicket.CategoryUUID == "" {
			ticket.CategoryUUID = nil
		} else {
			ticket.CategoryUUID = apiTicket.CategoryUUID
		}
	}
	if apiTicket.Tags != nil {
		ticket.Tags = *apiTicket.Tags
	}
	if apiTicket.DueDate != nil {
		ticket.DueDate = apiTicket.DueDate
	}
}

func TicketModelToApiFields(ticket models.Ticket, apiTicket *api.TicketResponse) {
	apiTicket.UUID = ticket.UUID
	apiTicket.OrganizationUUID = ticket.OrganizationUUID
	apiTicket.ReferenceID = ticket.ReferenceID
	apiTicket.Subject = ticket.Subject
	apiTicket.Description = ticket.Description
	apiTicket.Status = string(ticket.Status)
	apiTicket.Priority = string(ticket.Priority)
	apiTicket.Source = string(ticket.Source)
	apiTicket.RequesterEmail = ticket.RequesterEmail
	apiTicket.Tags = ticket.Tags
	apiTicket.DueDate = ticket.DueDate
	apiTicket.FirstResponseAt = ticket.FirstResponseAt
	apiTicket.ResolvedAt = ticket.ResolvedAt
	apiTicket.ClosedAt = ticket.ClosedAt
	apiTicket.ResolutionNotes = ticket.ResolutionNotes
	apiTicket.CustomerSatisfaction = ticket.CustomerSatisfaction
	apiTicket.CreatedAt = ticket.CreatedAt
	apiTicket.UpdatedAt = ticket.UpdatedAt

	if ticket.CategoryUUID != nil {
		apiTicket.CategoryUUID = *ticket.CategoryUUID
	}
	if ticket.Category != nil {
		apiTicket.CategoryName = ticket.Category.Name
	}
	if ticket.AssignedTo != nil {
		apiTicket.AssignedTo = *ticket.AssignedTo
	}
	if ticket.Assignee != nil {
		apiTicket.AssigneeName = ticket.Assignee.FullName
	}
}
