package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/streadway/amqp"
)

// Publisher is the subset of *amqp.Channel used for publishing.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPClient publishes queue messages to a RabbitMQ topic exchange.
type AMQPClient struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  Publisher
	exchange string
}

// NewAMQPClient dials the broker and declares the exchange.
func NewAMQPClient(url, exchange string) (*AMQPClient, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("AMQP_URL is required")
	}
	exchange = strings.TrimSpace(exchange)
	if exchange == "" {
		exchange = "session_updates"
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp declare exchange: %w", err)
	}

	return &AMQPClient{conn: conn, channel: ch, exchange: exchange}, nil
}

// NewAMQPClientWithPublisher wraps an existing channel.
func NewAMQPClientWithPublisher(p Publisher, exchange string) *AMQPClient {
	return &AMQPClient{channel: p, exchange: exchange}
}

// Send publishes a message. amqp channels are not safe for concurrent use.
func (a *AMQPClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode amqp message: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	err = a.channel.Publish(a.exchange, msg.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (a *AMQPClient) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var firstErr error
	if a.channel != nil {
		firstErr = a.channel.Close()
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ Client = (*AMQPClient)(nil)
