package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPNotifier публикует уведомления в очередь RabbitMQ;
// доставкой писем занимается внешний воркер
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// queuedMessage формат сообщения в очереди
type queuedMessage struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queuedAt"`
}

// NewAMQPNotifier подключается к RabbitMQ и объявляет durable очередь
func NewAMQPNotifier(url, queueName string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrUnavailable, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrUnavailable, err)
	}

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare queue: %v", ErrUnavailable, err)
	}

	return &AMQPNotifier{
		conn:    conn,
		channel: ch,
		queue:   q,
	}, nil
}

// Send публикует уведомление в очередь
func (n *AMQPNotifier) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(queuedMessage{
		To:       to,
		Subject:  subject,
		Body:     body,
		QueuedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrSendFailed, err)
	}

	err = n.channel.PublishWithContext(
		ctx,
		"",
		n.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("%w: publish: %v", ErrSendFailed, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (n *AMQPNotifier) Close() {
	_ = n.channel.Close()
	_ = n.conn.Close()
}
