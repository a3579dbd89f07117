package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/citamed/agenda-slots-service/internal/config"
	"github.com/citamed/agenda-slots-service/internal/core/ports/out"
)

// AppointmentListener consumes appointment change events published by the
// clinic backend and drops the affected doctor's cached slots.
type AppointmentListener struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	cachePort out.CachePort
	cfg       *config.Config
	logger    out.LoggerPort
}

// AppointmentEvent is the wire form of an appointment change. Status carries
// the persisted vocabulary; it is informational here since any change can
// flip slot availability.
type AppointmentEvent struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	DoctorID      uuid.UUID `json:"doctorId"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
}

func NewAppointmentListener(cachePort out.CachePort, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:      conn,
		channel:   channel,
		cachePort: cachePort,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				l.processMessage(ctx, msg)
				// Always ack: a malformed event is logged, not requeued
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("rabbitmq.listener.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) {
	var event AppointmentEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		l.logger.Warn("rabbitmq.event.malformed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	if event.DoctorID == uuid.Nil {
		l.logger.Warn("rabbitmq.event.missing_doctor", out.LogFields{
			"appointmentId": event.AppointmentID,
		})
		return
	}

	l.cachePort.InvalidateDoctor(ctx, event.DoctorID)

	l.logger.Debug("rabbitmq.event.processed", out.LogFields{
		"appointmentId": event.AppointmentID,
		"doctorId":      event.DoctorID,
		"status":        event.Status,
	})
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
