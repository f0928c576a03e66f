package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/internal/model"
	"Ieum/internal/queue"
	"Ieum/internal/repository"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/pkg/push"
	"Ieum/storage/database"
)

var (
	notificationService *NotificationService
	notificationOnce    sync.Once
)

func Notification() *NotificationService {
	notificationOnce.Do(func() {
		notificationService = NewNotificationService(
			repository.NewUserRepository(database.DB()),
			push.Default(),
			logger.Logger,
		)
	})
	return notificationService
}

// NotificationService is the worker-side delivery path: it turns queue
// messages into Expo pushes. Relay failures are logged and dropped,
// never retried.
type NotificationService struct {
	users  UserStore
	sender push.Sender
	log    *zap.Logger
}

func NewNotificationService(users UserStore, sender push.Sender, log *zap.Logger) *NotificationService {
	return &NotificationService{users: users, sender: sender, log: log}
}

// DeliverPush sends one prepared push task.
func (s *NotificationService) DeliverPush(ctx context.Context, msg queue.PushMessage) error {
	err := s.sender.Send(ctx, push.Message{
		To:    msg.Token,
		Title: msg.Title,
		Body:  msg.Body,
		Data:  msg.Data,
	})
	if err != nil {
		s.log.Warn("Push delivery failed",
			zap.Int64("message_id", msg.MessageID),
			zap.String("category", msg.Category),
			zap.Error(err),
		)
	}
	return nil
}

// DeliverStatePrompt fires the daily "오늘의 기록" prompt with a fresh
// token lookup at delivery time.
func (s *NotificationService) DeliverStatePrompt(ctx context.Context, msg queue.StatePromptMessage) error {
	user, err := s.users.FindByID(ctx, msg.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("user %d no longer exists", msg.UserID)}
	}
	if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}

	if user.ExpoPushToken == "" || !user.NotificationsEnabled {
		return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("user %d not reachable for prompts", user.ID)}
	}

	err = s.sender.Send(ctx, push.Message{
		To:    user.ExpoPushToken,
		Title: "오늘의 기록",
		Body:  "지금 기분이 어떠세요? 사진과 함께 공유해 주세요.",
		Data: map[string]interface{}{
			"categoryId": string(model.NotificationCategoryStateRequest),
			"date":       msg.Date,
		},
	})
	if err != nil {
		s.log.Warn("State prompt delivery failed",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}
	return nil
}

// DeliverAlarmFollowup re-delivers a snoozed alarm or state prompt.
func (s *NotificationService) DeliverAlarmFollowup(ctx context.Context, msg queue.AlarmFollowupMessage) error {
	user, err := s.users.FindByID(ctx, msg.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("user %d no longer exists", msg.UserID)}
	}
	if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}

	if user.ExpoPushToken == "" {
		return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("user %d has no push token", user.ID)}
	}

	body := "미뤄둔 알림 시간이에요."
	data := map[string]interface{}{}
	if msg.AlarmID != 0 {
		data["categoryId"] = string(model.NotificationCategoryAlarm)
		data["alarmId"] = strconv.FormatInt(msg.AlarmID, 10)
		if msg.Reason != "" {
			body = fmt.Sprintf("미뤄둔 알림이에요. (사유: %s)", msg.Reason)
		}
	} else {
		data["categoryId"] = string(model.NotificationCategoryStateRequest)
		body = "지금 기분이 어떠세요? 사진과 함께 공유해 주세요."
	}

	err = s.sender.Send(ctx, push.Message{
		To:    user.ExpoPushToken,
		Title: msg.Title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		s.log.Warn("Follow-up delivery failed",
			zap.Int64("user_id", user.ID),
			zap.Int64("alarm_id", msg.AlarmID),
			zap.Error(err),
		)
	}
	return nil
}
