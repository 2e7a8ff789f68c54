package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type ticketActivityDaoImpl struct {
	db *gorm.DB
}

func GetTicketActivityDao(db *gorm.DB) TicketActivityDao {
	return ticketActivityDaoImpl{db: db}
}

func (d ticketActivityDaoImpl) List(ctx context.Context, orgUUID string, ticketUUID string, paginationData api.PaginationData) (api.TicketActivityCollectionResponse, int64, error) {
	var total int64
	activities := make([]models.TicketActivity, 0)

	ticket, err := ticketDaoImpl{db: d.db}.fetchTicket(ctx, orgUUID, ticketUUID)
	if err != nil {
		return api.TicketActivityCollectionResponse{}, 0, err
	}

	filteredDB := d.db.WithContext(ctx).
		Model(&models.TicketActivity{}).
		Where("ticket_uuid = ?", UuidifyString(ticket.UUID))

	filteredDB.Count(&total)
	if filteredDB.Error != nil {
		return api.TicketActivityCollectionResponse{}, total, filteredDB.Error
	}

	result := filteredDB.
		Order("created_at desc").
		Limit(paginationData.Limit).
		Offset(paginationData.Offset).
		Find(&activities)
	if result.Error != nil {
		return api.TicketActivityCollectionResponse{}, total, result.Error
	}

	resp := make([]api.TicketActivityResponse, len(activities))
	for i := 0; i < len(activities); i++ {
		ActivityModelToApiFields(activities[i], &resp[i])
	}
	return api.TicketActivityCollectionResponse{Data: resp}, total, nil
}

func ActivityModelToApiFields(activity models.TicketActivity, apiActivity *api.TicketActivityResponse) {
	apiActivity.UUID = activity.UUID
	apiActivity.TicketUUID = activity.TicketUUID
	apiActivity.UserEmail = activity.UserEmail
	apiActivity.ActivityType = string(activity.ActivityType)
	apiActivity.Description = activity.Description
	apiActivity.OldValue = activity.OldValue
	apiActivity.NewValue = activity.NewValue
	apiActivity.CreatedAt = activity.CreatedAt
	if activity.UserUUID != nil {
		apiActivity.UserUUID = *activity.UserUUID
	}
}
