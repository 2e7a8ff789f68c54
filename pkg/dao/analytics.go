package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type analyticsDaoImpl struct {
	db *gorm.DB
}

func GetAnalyticsDao(db *gorm.DB) AnalyticsDao {
	return analyticsDaoImpl{db: db}
}

type countRow struct {
	Key   string
	Count int64
}

func (d analyticsDaoImpl) Summary(ctx context.Context, orgUUID string) (api.AnalyticsSummaryResponse, error) {
	summary := api.AnalyticsSummaryResponse{
		TicketsByStatus:   map[string]int64{},
		TicketsByPriority: map[string]int64{},
		TicketsByCategory: map[string]int64{},
	}
	pdb := d.db.WithContext(ctx)
	org := UuidifyString(orgUUID)

	var statusRows []countRow
	result := pdb.Model(&models.Ticket{}).
		Select("status as key, count(*) as count").
		Where("organization_uuid = ?", org).
		Group("status").
		Scan(&statusRows)
	if result.Error != nil {
		return summary, DBErrorToApi(result.Error, "Ticket", nil)
	}
	for _, row := range statusRows {
		summary.TicketsByStatus[row.Key] = row.Count
		summary.TotalTickets += row.Count
		switch models.TicketStatus(row.Key) {
		case models.StatusResolved, models.StatusClosed:
			summary.ResolvedTickets += row.Count
		default:
			summary.OpenTickets += row.Count
		}
	}

	var priorityRows []countRow
	result = pdb.Model(&models.Ticket{}).
		Select("priority as key, count(*) as count").
		Where("organization_uuid = ?", org).
		Group("priority").
		Scan(&priorityRows)
	if result.Error != nil {
		return summary, DBErrorToApi(result.Error, "Ticket", nil)
	}
	for _, row := range priorityRows {
		summary.TicketsByPriority[row.Key] = row.Count
	}

	var categoryRows []countRow
	result = pdb.Model(&models.Ticket{}).
		Select("coalesce(ticket_categories.name, 'uncategorized') as key, count(*) as count").
		Joins("left join ticket_categories on ticket_categories.uuid = tickets.category_uuid").
		Where("tickets.organization_uuid = ?", org).
		Group("ticket_categories.name").
		Scan(&categoryRows)
	if result.Error != nil {
		return summary, DBErrorToApi(result.Error, "Ticket", nil)
	}
	for _, row := range categoryRows {
		summary.TicketsByCategory[row.Key] = row.Count
	}

	var avgResolution *float64
	result = pdb.Model(&models.Ticket{}).
		Select("avg(extract(epoch from (resolved_at - created_at)) / 3600)").
		Where("organization_uuid = ? AND resolved_at IS NOT NULL", org).
		Scan(&avgResolution)
	if result.Error != nil {
		return summary, DBErrorToApi(result.Error, "Ticket", nil)
	}
	if avgResolution != nil {
		summary.AvgResolutionHours = *avgResolution
	}

	var avgFirstResponse *float64
	result = pdb.Model(&models.Ticket{}).
		Select("avg(extract(epoch from (first_response_at - created_at)) / 60)").
		Where("organization_uuid = ? AND first_response_at IS NOT NULL", org).
		Scan(&avgFirstResponse)
	if result.Error != nil {
		return summary, DBErrorToApi(result.Error, "Ticket", nil)
	}
	if avgFirstResponse != nil {
		summary.AvgFirstResponseMins = *avgFirstResponse
	}

	return summary, nil
}
