// Package queue_publisher publishes domain events to RabbitMQ.  Errors are
// logged and returned so callers can ignore broker failures without
// interrupting the request that triggered the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/raddison/salon-booking/internal/queue"
)

const appointmentQueueName = "appointment.booked"

// PublishAppointmentBooked publishes an AppointmentBookedEvent to the
// appointment.booked queue.  The connection is opened per publish; booking
// volume is nowhere near the point where that matters, and it keeps the
// publisher free of shared state.  Messages are persistent.
func PublishAppointmentBooked(ctx context.Context, log *zap.Logger, event q.AppointmentBookedEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare keeps publish working when the consumer has not
	// started yet.
	if _, err := ch.QueueDeclare(appointmentQueueName, true, false, false, false, nil); err != nil {
		log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", appointmentQueueName, false, false, pub); err != nil {
		log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
