package cache

import (
	"context"
	"fmt"
	"time"

	"Ieum/storage/redis"
)

const (
	promptScheduledPrefix  = "prompt:scheduled"
	messageProcessedPrefix = "message:processed"

	scheduledTTL = 24 * time.Hour
	processedTTL = 48 * time.Hour
)

// IsPromptScheduled checks whether today's state-request prompt was
// already queued for the user.
func IsPromptScheduled(ctx context.Context, date string, userID int64) (bool, error) {
	key := redis.Key(promptScheduledPrefix, date, fmt.Sprintf("%d", userID))
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check prompt scheduled status: %w", err)
	}
	return result > 0, nil
}

// MarkPromptScheduled marks the (user, date) prompt as queued.
func MarkPromptScheduled(ctx context.Context, date string, userID int64) error {
	key := redis.Key(promptScheduledPrefix, date, fmt.Sprintf("%d", userID))
	return redis.Client().Set(ctx, key, "1", scheduledTTL).Err()
}

// UnmarkPromptScheduled clears the mark so the prompt can be redrawn
// after a state-request response.
func UnmarkPromptScheduled(ctx context.Context, date string, userID int64) error {
	key := redis.Key(promptScheduledPrefix, date, fmt.Sprintf("%d", userID))
	if err := redis.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to unmark prompt scheduled: %w", err)
	}
	return nil
}

// MarkMessageProcessed claims a queue message id. Returns false when
// another consumer already processed it.
func MarkMessageProcessed(ctx context.Context, messageID int64) (bool, error) {
	key := redis.Key(messageProcessedPrefix, fmt.Sprintf("%d", messageID))
	ok, err := redis.Client().SetNX(ctx, key, "1", processedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message processed: %w", err)
	}
	return ok, nil
}
