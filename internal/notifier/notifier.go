// Package notifier публикует события модерации в RabbitMQ.
//
// События отправляются при жалобе на продукт и при смене его статуса.
// Публикация — best effort: ошибка логируется вызывающей стороной
// и не срывает обработку запроса.
package notifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Виды событий модерации.
const (
	EventProductReported = "product.reported"
	EventStatusChanged   = "product.status_changed"
)

// Event описывает событие модерации.
type Event struct {
	Kind      string    `json:"kind"`
	ProductID string    `json:"product_id"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher держит соединение и канал RabbitMQ с объявленной очередью.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// New подключается к брокеру и объявляет durable-очередь queue.
func New(url, queue string) (*Publisher, error) {
	const op = "notifier.New"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// Publish сериализует событие в JSON и публикует его в очередь.
func (p *Publisher) Publish(event Event) error {
	const op = "notifier.Publish"

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение с брокером.
func (p *Publisher) Close() error {
	_ = p.ch.Close()
	return p.conn.Close()
}
