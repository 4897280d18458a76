package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события заявок в RabbitMQ
// Отправка fire-and-forget: ошибка публикации логируется и не
// возвращается вызывающей стороне - уведомления не участвуют в транзакции
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      Logger
}

// NewPublisher подключается к RabbitMQ и объявляет topic exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notifications: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notifications: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notifications: declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// PublishBookingEvent публикует событие перехода заявки
// EventID и OccurredAt заполняются здесь, если не заданы
func (p *Publisher) PublishBookingEvent(ctx context.Context, routingKey string, event BookingEvent) {
	event = event.withDefaults(uuid.NewString, time.Now)

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("notifications: marshal event booking_id=%d: %v", event.BookingID, err)
		return
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   event.EventID,
		Body:        body,
	})
	if err != nil {
		p.log.Error("notifications: publish %s booking_id=%d: %v", routingKey, event.BookingID, err)
		return
	}

	p.log.Info("notifications: published %s booking_id=%d event_id=%s", routingKey, event.BookingID, event.EventID)
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher заглушка, используется когда уведомления выключены в конфиге
type NopPublisher struct{}

// PublishBookingEvent ничего не делает
func (NopPublisher) PublishBookingEvent(_ context.Context, _ string, _ BookingEvent) {}
