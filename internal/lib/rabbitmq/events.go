package rabbitmq

import (
	"time"

	"github.com/streadway/amqp"

	"github.com/barberos/barbershop-backend/internal/models"
)

// ReservationEvent описывает событие о созданной брони,
// публикуемое для воркера напоминаний.
type ReservationEvent struct {
	ReservationID int64   `json:"reservation_id"`
	ShopID        int64   `json:"shop_id"`
	ClientName    string  `json:"client_name"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Details       *string `json:"details,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// EventPublisher публикует события о бронях в RabbitMQ.
type EventPublisher struct {
	ch *amqp.Channel
}

// NewEventPublisher создает новый EventPublisher поверх открытого канала.
func NewEventPublisher(ch *amqp.Channel) *EventPublisher {
	return &EventPublisher{ch: ch}
}

// PublishReservationCreated отправляет событие о созданной брони.
func (p *EventPublisher) PublishReservationCreated(res *models.Reservation) error {
	event := ReservationEvent{
		ReservationID: res.ID,
		ShopID:        res.ShopID,
		ClientName:    res.ClientName,
		Date:          res.Date.Format("2006-01-02"),
		Time:          res.Time.Format("15:04"),
		Details:       res.Details,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	return PublishMessage(p.ch, ReservationsExchange, CreatedRoutingKey, event)
}
