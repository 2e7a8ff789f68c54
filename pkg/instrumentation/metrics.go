package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameSpace              = "ticketing"
	HttpStatusHistogram    = "http_status_histogram"
	TenantResolutionsTotal = "tenant_resolutions_total"
	OrganizationsTotal     = "organizations_total"
	TicketsTotal           = "tickets_total"
	OpenTicketsTotal       = "open_tickets_total"
	MembershipsTotal       = "memberships_total"
	KafkaMessageLatency    = "kafka_message_latency"
	KafkaMessageStatus     = "kafka_message_status"
)

type Metrics struct {
	HttpStatusHistogram prometheus.HistogramVec

	// Custom metrics
	TenantResolutionsTotal prometheus.CounterVec
	OrganizationsTotal     prometheus.Gauge
	TicketsTotal           prometheus.Gauge
	OpenTicketsTotal       prometheus.Gauge
	MembershipsTotal       prometheus.Gauge
	KafkaMessageStatus     prometheus.CounterVec
	KafkaMessageLatency    prometheus.Histogram

	reg *prometheus.Registry
}

// See: https://prometheus.io/docs/tutorials/understanding_metric_types/#types-of-metrics
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		panic("reg cannot be nil")
	}
	metrics := &Metrics{
		reg: reg,
		HttpStatusHistogram: *promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: NameSpace,
			Name:      HttpStatusHistogram,
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status", "method", "path"}),

		TenantResolutionsTotal: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      TenantResolutionsTotal,
			Help:      "Hostname to tenant resolutions by outcome",
		}, []string{"outcome"}),
		OrganizationsTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: NameSpace,
			Name:      OrganizationsTotal,
			Help:      "Number of organizations",
		}),
		TicketsTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: NameSpace,
			Name:      TicketsTotal,
			Help:      "Number of tickets",
		}),
		OpenTicketsTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: NameSpace,
			Name:      OpenTicketsTotal,
			Help:      "Number of tickets not yet resolved or closed",
		}),
		MembershipsTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: NameSpace,
			Name:      MembershipsTotal,
			Help:      "Number of organization memberships",
		}),
		KafkaMessageLatency: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: NameSpace,
			Name:      KafkaMessageLatency,
			Help:      "Time from event creation to kafka delivery",
			Buckets:   prometheus.DefBuckets,
		}),
		KafkaMessageStatus: *promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: NameSpace,
			Name:      KafkaMessageStatus,
			Help:      "Result of kafka messages",
		}, []string{"state"}),
	}

	reg.MustRegister(collectors.NewBuildInfoCollector())

	return metrics
}

func (m *Metrics) RecordTenantResolution(outcome string) {
	if m != nil {
		m.TenantResolutionsTotal.With(prometheus.Labels{"outcome": outcome}).Inc()
	}
}

func (m *Metrics) RecordKafkaMessageStatus(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	if m != nil {
		m.KafkaMessageStatus.With(prometheus.Labels{"state": status}).Inc()
	}
}

func (m *Metrics) RecordKafkaLatency(msgTime time.Time) {
	if m != nil {
		m.KafkaMessageLatency.Observe(time.Since(msgTime).Seconds())
	}
}

func (m Metrics) Registry() *prometheus.Registry {
	return m.reg
}
