package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"Ieum/config"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()
		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			return
		}

		connErr = declareTopology()
	})

	return connErr
}

// Connection returns the shared AMQP connection.
func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// declareTopology declares the exchanges and queues both producers and
// consumers rely on. Safe to run from every process.
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	// delayed exchange for prompt and follow-up scheduling
	if err := ch.ExchangeDeclare(
		"scheduler.delayed",
		"x-delayed-message",
		true, false, false, false,
		amqp.Table{"x-delayed-type": "topic"},
	); err != nil {
		return err
	}

	// immediate push delivery tasks
	if err := ch.ExchangeDeclare(
		"notification.topic",
		"topic",
		true, false, false, false,
		nil,
	); err != nil {
		return err
	}

	queues := []struct {
		name     string
		exchange string
		key      string
	}{
		{"prompt.state.daily", "scheduler.delayed", "prompt.state.daily"},
		{"alarm.followup", "scheduler.delayed", "alarm.followup"},
		{"notification.push", "notification.topic", "notification.push.*"},
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.name, true, false, false, false, nil); err != nil {
			return err
		}
		if err := ch.QueueBind(q.name, q.key, q.exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}
