package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"Ieum/pkg/logger"
	"Ieum/pkg/snowflake"
	"Ieum/storage/mq"
)

// PublishStatePrompt queues the daily state-request prompt as a delayed
// message firing after msg.DelaySeconds.
func PublishStatePrompt(msg StatePromptMessage) error {
	if msg.MessageID == 0 {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = id
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	err := mq.PublishDelayedMessage(ExchangeDelayed, RouteStatePrompt, delay, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish state prompt message",
			zap.Int64("user_id", msg.UserID),
			zap.String("date", msg.Date),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish state prompt: %w", err)
	}

	logger.Logger.Info("Published state prompt message",
		zap.Int64("message_id", msg.MessageID),
		zap.Int64("user_id", msg.UserID),
		zap.String("date", msg.Date),
		zap.Duration("delay", delay),
	)

	return nil
}

// PublishAlarmFollowup queues a snooze follow-up. Delays stay well under
// the 24h cap of the delayed-message plugin, so no overflow handling.
func PublishAlarmFollowup(msg AlarmFollowupMessage) error {
	if msg.MessageID == 0 {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = id
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	err := mq.PublishDelayedMessage(ExchangeDelayed, RouteAlarmFollowup, delay, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish alarm follow-up message",
			zap.Int64("user_id", msg.UserID),
			zap.Int64("alarm_id", msg.AlarmID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish alarm follow-up: %w", err)
	}

	logger.Logger.Info("Published alarm follow-up message",
		zap.Int64("message_id", msg.MessageID),
		zap.Int64("user_id", msg.UserID),
		zap.Int64("alarm_id", msg.AlarmID),
		zap.Duration("delay", delay),
	)

	return nil
}

// PublishPush queues one push delivery task for the worker.
func PublishPush(msg PushMessage) error {
	if msg.MessageID == 0 {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = id
	}

	routingKey := "notification.push." + msg.Category

	err := mq.PublishMessage(ExchangeNotification, routingKey, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish push message",
			zap.Int64("message_id", msg.MessageID),
			zap.String("category", msg.Category),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish push task: %w", err)
	}

	return nil
}
