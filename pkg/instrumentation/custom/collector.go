package custom

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/dao"
	"github.com/ticketing-services/ticketing-backend/pkg/instrumentation"
	"gorm.io/gorm"
)

const tickerDelay = 30 // in seconds // could be good to match this with the scrapper frequency

type Collector struct {
	context context.Context
	metrics *instrumentation.Metrics
	dao     dao.MetricsDao
}

func NewCollector(context context.Context, metrics *instrumentation.Metrics, db *gorm.DB) *Collector {
	if context == nil {
		return nil
	}
	if metrics == nil {
		return nil
	}
	if db == nil {
		return nil
	}
	return &Collector{
		context: context,
		metrics: metrics,
		dao:     dao.GetMetricsDao(db),
	}
}

func (c *Collector) iterate() {
	ctx := c.context
	c.metrics.OrganizationsTotal.Set(float64(c.dao.OrganizationsCount(ctx)))
	c.metrics.TicketsTotal.Set(float64(c.dao.TicketsCount(ctx)))
	c.metrics.OpenTicketsTotal.Set(float64(c.dao.OpenTicketsCount(ctx)))
	c.metrics.MembershipsTotal.Set(float64(c.dao.MembershipsCount(ctx)))
}

func (c *Collector) Run() {
	log.Info().Msg("Starting metrics collector go routine")
	ticker := time.NewTicker(tickerDelay * time.Second)
	for {
		select {
		case <-ticker.C:
			c.iterate()
		case <-c.context.Done():
			log.Info().Msgf("Stopping metrics collector go routine")
			ticker.Stop()
			return
		}
	}
}
