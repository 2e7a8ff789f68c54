package dao

import (
	"context"
	"time"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type ticketResponseDaoImpl struct {
	db *gorm.DB
}

func GetTicketResponseDao(db *gorm.DB) TicketResponseDao {
	return ticketResponseDaoImpl{db: db}
}

func (d ticketResponseDaoImpl) Create(ctx context.Context, orgUUID string, ticketUUID string, fromMember bool, respReq api.TicketResponseRequest, userUUID *string, userEmail string) (api.TicketResponseItem, error) {
	var response models.TicketResponse

	ticket, err := ticketDaoImpl{db: d.db}.fetchTicket(ctx, orgUUID, ticketUUID)
	if err != nil {
		return api.TicketResponseItem{}, err
	}

	response.TicketUUID = ticket.UUID
	response.UserUUID = userUUID
	response.UserEmail = userEmail
	if respReq.ResponseText != nil {
		response.ResponseText = *respReq.ResponseText
	}
	if respReq.ResponseType != nil {
		response.ResponseType = *respReq.ResponseType
	}
	if respReq.IsInternal != nil {
		response.IsInternal = *respReq.IsInternal
	}

	// Requesters cannot file internal notes.
	if response.IsInternal && !fromMember {
		return api.TicketResponseItem{}, &ce.DaoError{Forbidden: true, Message: "Only organization members can add internal notes"}
	}

	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return DBErrorToApi(err, "Response", nil)
		}

		// The first public reply from a member stamps the response time SLA.
		if fromMember && !response.IsInternal && ticket.FirstResponseAt == nil {
			now := time.Now()
			if err := tx.Model(&ticket).Update("first_response_at", &now).Error; err != nil {
				return DBErrorToApi(err, "Ticket", &ticketUUID)
			}
		}

		activityType := models.ActivityCommented
		if response.IsInternal {
			activityType = models.ActivityNoteAdded
		}
		activity := models.TicketActivity{
			TicketUUID:   ticket.UUID,
			ActivityType: activityType,
			UserUUID:     userUUID,
			UserEmail:    userEmail,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return api.TicketResponseItem{}, err
	}

	var created api.TicketResponseItem
	ResponseModelToApiFields(response, &created)
	return created, nil
}

func (d ticketResponseDaoImpl) List(ctx context.Context, orgUUID string, ticketUUID string, paginationData api.PaginationData, includeInternal bool) (api.TicketResponseCollectionResponse, int64, error) {
	var total int64
	responses := make([]models.TicketResponse, 0)

	ticket, err := ticketDaoImpl{db: d.db}.fetchTicket(ctx, orgUUID, ticketUUID)
	if err != nil {
		return api.TicketResponseCollectionResponse{}, 0, err
	}

	filteredDB := d.db.WithContext(ctx).
		Model(&models.TicketResponse{}).
		Where("ticket_uuid = ?", UuidifyString(ticket.UUID))
	if !includeInternal {
		filteredDB = filteredDB.Where("is_internal = false")
	}

	filteredDB.Count(&total)
	if filteredDB.Error != nil {
		return api.TicketResponseCollectionResponse{}, total, filteredDB.Error
	}

	result := filteredDB.
		Preload("User").
		Order("created_at asc").
		Limit(paginationData.Limit).
		Offset(paginationData.Offset).
		Find(&responses)
	if result.Error != nil {
		return api.TicketResponseCollectionResponse{}, total, result.Error
	}

	resp := make([]api.TicketResponseItem, len(responses))
	for i := 0; i < len(responses); i++ {
		ResponseModelToApiFields(responses[i], &resp[i])
	}
	return api.TicketResponseCollectionResponse{Data: resp}, total, nil
}

func ResponseModelToApiFields(response models.TicketResponse, apiResp *api.TicketResponseItem) {
	apiResp.UUID = response.UUID
	apiResp.TicketUUID = response.TicketUUID
	apiResp.UserEmail = response.UserEmail
	apiResp.ResponseText = response.ResponseText
	apiResp.ResponseType = response.ResponseType
	apiResp.IsInternal = response.IsInternal
	apiResp.CreatedAt = response.CreatedAt
	if response.UserUUID != nil {
		apiResp.UserUUID = *response.UserUUID
	}
	if response.User != nil && apiResp.UserEmail == "" {
		apiResp.UserEmail = response.User.Email
	}
}
