package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"Ieum/internal/cache"
	"Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/storage/mq"
)

// DeliveryService is the worker-side handler set. The worker injects the
// concrete service at startup so this package stays free of business
// dependencies.
type DeliveryService interface {
	DeliverPush(ctx context.Context, msg PushMessage) error
	DeliverStatePrompt(ctx context.Context, msg StatePromptMessage) error
	DeliverAlarmFollowup(ctx context.Context, msg AlarmFollowupMessage) error
}

var deliveryService DeliveryService

// SetDeliveryService wires the worker's delivery implementation.
func SetDeliveryService(s DeliveryService) {
	deliveryService = s
}

// claimMessage runs the SETNX idempotency check shared by every consumer.
func claimMessage(ctx context.Context, messageID int64) error {
	claimed, err := cache.MarkMessageProcessed(ctx, messageID)
	if err != nil {
		logger.Logger.Warn("Failed to check message processed status",
			zap.Int64("message_id", messageID),
			zap.Error(err),
		)
		// keep processing on a Redis failure, duplicates beat losses here
		return nil
	}
	if !claimed {
		return &errors.SkipMessageError{
			Reason: fmt.Sprintf("message %d already processed", messageID),
		}
	}
	return nil
}

// StartPushConsumer drains push delivery tasks to the Expo relay.
func StartPushConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg PushMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal push message: %w", err)
		}

		if err := claimMessage(ctx, msg.MessageID); err != nil {
			return err
		}

		return deliveryService.DeliverPush(ctx, msg)
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         QueuePush,
		ConsumerTag:   "push_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartStatePromptConsumer fires the daily state-request prompt when the
// delayed message comes due.
func StartStatePromptConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg StatePromptMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal state prompt message: %w", err)
		}

		if err := claimMessage(ctx, msg.MessageID); err != nil {
			return err
		}

		logger.Logger.Info("Processing state prompt",
			zap.Int64("message_id", msg.MessageID),
			zap.Int64("user_id", msg.UserID),
			zap.String("date", msg.Date),
		)

		return deliveryService.DeliverStatePrompt(ctx, msg)
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         QueueStatePrompt,
		ConsumerTag:   "state_prompt_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAlarmFollowupConsumer re-delivers snoozed alarms and snoozed
// state prompts after their fixed offsets.
func StartAlarmFollowupConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg AlarmFollowupMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal alarm follow-up message: %w", err)
		}

		if err := claimMessage(ctx, msg.MessageID); err != nil {
			return err
		}

		logger.Logger.Info("Processing alarm follow-up",
			zap.Int64("message_id", msg.MessageID),
			zap.Int64("user_id", msg.UserID),
			zap.Int64("alarm_id", msg.AlarmID),
		)

		return deliveryService.DeliverAlarmFollowup(ctx, msg)
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         QueueAlarmFollowup,
		ConsumerTag:   "alarm_followup_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers starts every consumer the worker owns and blocks
// until all of them have been launched.
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"push", StartPushConsumer},
		{"state_prompt", StartStatePromptConsumer},
		{"alarm_followup", StartAlarmFollowupConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()

	logger.Logger.Info("All consumers started")
}
