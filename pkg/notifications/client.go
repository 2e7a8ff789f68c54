package notifications

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/cloudevents/sdk-go/protocol/kafka_sarama/v2"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/instrumentation"
)

var metrics *instrumentation.Metrics

// SetMetrics wires the kafka delivery counters, called once at startup.
func SetMetrics(m *instrumentation.Metrics) {
	metrics = m
}

// TicketEvent is the notification payload for ticket lifecycle events.
type TicketEvent struct {
	UUID           string    `json:"uuid"`
	ReferenceID    string    `json:"reference_id"`
	Subject        string    `json:"subject"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	RequesterEmail string    `json:"requester_email"`
	AssignedTo     string    `json:"assigned_to,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type TicketEvents struct {
	Tickets []TicketEvent `json:"tickets"`
}

func SendNotification(orgUUID string, eventName EventName, tickets []TicketEvent) {
	kafkaServers := config.Get().Kafka.Servers

	if len(kafkaServers) == 0 {
		log.Warn().Msg("SendNotification: 'kafkaServers' is empty!")
		return
	}

	eventNameStr := eventName.String()
	saramaConfig := sarama.NewConfig()

	saramaConfig.Version = sarama.V0_10_2_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	protocol, err := kafka_sarama.NewSender(kafkaServers, saramaConfig, config.Get().Kafka.Topic)
	if err != nil {
		log.Error().Err(err).Msg("failed to create kafka_sarama protocol")
		metrics.RecordKafkaMessageStatus(false)
		return
	}
	ctx := cloudevents.WithEncodingStructured(context.Background())
	defer protocol.Close(ctx)

	c, err := cloudevents.NewClient(protocol, cloudevents.WithTimeNow(), cloudevents.WithUUIDs())
	if err != nil {
		log.Error().Err(err).Msg("failed to create cloudevents client")
		metrics.RecordKafkaMessageStatus(false)
		return
	}
	newUUID, _ := uuid.NewRandom()
	e := cloudevents.NewEvent()
	e.SetSource("urn:ticketing:source:backend")
	e.SetID(newUUID.String())
	e.SetType("com.ticketing.tickets." + eventNameStr)
	e.SetSubject("urn:ticketing:subject:" + eventNameStr)
	e.SetTime(time.Now())
	e.SetExtension("organizationuuid", orgUUID)

	data := TicketEvents{Tickets: tickets}
	err = e.SetData(cloudevents.ApplicationJSON, data)

	if err != nil {
		log.Error().Err(err).Msg("failed to set cloudevents data")
		metrics.RecordKafkaMessageStatus(false)
		return
	}

	// Send the event
	if result := c.Send(ctx, e); cloudevents.IsUndelivered(result) {
		log.Error().Err(result).Msg("Notification message failed to send")
		metrics.RecordKafkaMessageStatus(false)
		return
	} else {
		log.Debug().Msgf("Notification message accepted: %t", cloudevents.IsACK(result))
		metrics.RecordKafkaMessageStatus(true)
		metrics.RecordKafkaLatency(e.Time())
	}
}

func MapTicketResponse(ticket api.TicketResponse) TicketEvent {
	return TicketEvent{
		UUID:           ticket.UUID,
		ReferenceID:    ticket.ReferenceID,
		Subject:        ticket.Subject,
		Status:         ticket.Status,
		Priority:       ticket.Priority,
		RequesterEmail: ticket.RequesterEmail,
		AssignedTo:     ticket.AssignedTo,
		CreatedAt:      ticket.CreatedAt,
	}
}
