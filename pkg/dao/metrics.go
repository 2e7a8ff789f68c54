package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type metricsDaoImpl struct {
	db *gorm.DB
}

func GetMetricsDao(db *gorm.DB) MetricsDao {
	if db == nil {
		return nil
	}
	return metricsDaoImpl{
		db: db,
	}
}

func (d metricsDaoImpl) OrganizationsCount(ctx context.Context) int {
	// select COUNT(*) from organizations ;
	var output int64 = -1
	d.db.WithContext(ctx).
		Model(&models.Organization{}).
		Count(&output)
	return int(output)
}

func (d metricsDaoImpl) TicketsCount(ctx context.Context) int {
	// select COUNT(*) from tickets ;
	var output int64 = -1
	d.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Count(&output)
	return int(output)
}

func (d metricsDaoImpl) OpenTicketsCount(ctx context.Context) int {
	// select COUNT(*) from tickets where status not in ('resolved','closed');
	var output int64 = -1
	d.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("status not in (?, ?)", models.StatusResolved, models.StatusClosed).
		Count(&output)
	return int(output)
}

func (d metricsDaoImpl) MembershipsCount(ctx context.Context) int {
	// select COUNT(*) from organization_members ;
	var output int64 = -1
	d.db.WithContext(ctx).
		Model(&models.Membership{}).
		Count(&output)
	return int(output)
}
