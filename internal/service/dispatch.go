package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/config"
	"Ieum/internal/cache"
	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	"Ieum/internal/queue"
	"Ieum/internal/repository"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/storage/database"
)

var (
	dispatchService *DispatchService
	dispatchOnce    sync.Once
)

func Dispatch() *DispatchService {
	dispatchOnce.Do(func() {
		dispatchService = NewDispatchService(
			repository.NewUserRepository(database.DB()),
			repository.NewAlarmRepository(database.DB()),
			repository.NewResponseRepository(database.DB()),
			logger.Logger,
		)
	})
	return dispatchService
}

// ResponseStore is the persistence surface for reaction records.
type ResponseStore interface {
	Append(ctx context.Context, response *model.Response) error
	ListByAlarm(ctx context.Context, alarmID int64) ([]model.Response, error)
}

// DispatchService turns notification reactions into their follow-up
// effects: appended response records, snooze follow-ups, partner pushes
// and the daily prompt redraw.
type DispatchService struct {
	users     UserStore
	alarms    AlarmStore
	responses ResponseStore
	log       *zap.Logger

	now             func() time.Time
	randInt         func(n int) int
	publishFollowup func(queue.AlarmFollowupMessage) error
	publishPush     func(queue.PushMessage) error
	publishPrompt   func(queue.StatePromptMessage) error
	markPrompt      func(ctx context.Context, date string, userID int64) error
}

func NewDispatchService(users UserStore, alarms AlarmStore, responses ResponseStore, log *zap.Logger) *DispatchService {
	return &DispatchService{
		users:           users,
		alarms:          alarms,
		responses:       responses,
		log:             log,
		now:             time.Now,
		randInt:         rand.Intn,
		publishFollowup: queue.PublishAlarmFollowup,
		publishPush:     queue.PublishPush,
		publishPrompt:   queue.PublishStatePrompt,
		markPrompt:      cache.MarkPromptScheduled,
	}
}

// HandleResponse processes one notification reaction. Unknown category
// or action combinations are acknowledged as no-ops.
func (s *DispatchService) HandleResponse(ctx context.Context, userID int64, req dto.NotificationResponseRequest) (*dto.NotificationResponseData, error) {
	switch model.NotificationCategory(req.Category) {
	case model.NotificationCategoryStateRequest:
		return s.handleStateRequest(ctx, userID, req)
	case model.NotificationCategoryAlarm:
		return s.handleAlarmResponse(ctx, userID, req)
	default:
		return &dto.NotificationResponseData{Handled: false}, nil
	}
}

// handleStateRequest covers the daily mood prompt. Confirming only
// acknowledges (the client moves to the camera); snoozing queues one
// ad-hoc re-prompt. Either way the next daily prompt is redrawn at a
// fresh random time.
func (s *DispatchService) handleStateRequest(ctx context.Context, userID int64, req dto.NotificationResponseRequest) (*dto.NotificationResponseData, error) {
	action := model.NotificationAction(req.Action)
	if action != model.NotificationActionConfirmState && action != model.NotificationActionSnoozeState {
		return &dto.NotificationResponseData{Handled: false}, nil
	}

	if action == model.NotificationActionSnoozeState {
		msg := queue.AlarmFollowupMessage{
			UserID:       userID,
			Title:        "오늘의 기록",
			DelaySeconds: config.Cfg.PromptSnoozeMinutes * 60,
		}
		if err := s.publishFollowup(msg); err != nil {
			return nil, fmt.Errorf("failed to schedule prompt follow-up: %w", err)
		}
	}

	if err := s.redrawDailyPrompt(ctx, userID); err != nil {
		return nil, err
	}

	return &dto.NotificationResponseData{Handled: true}, nil
}

// redrawDailyPrompt queues tomorrow's state-request prompt at a fresh
// uniform draw in the configured window. Every response redraws; the
// drawn time is never persisted as a fixed slot.
func (s *DispatchService) redrawDailyPrompt(ctx context.Context, userID int64) error {
	now := s.now()

	hour := config.Cfg.PromptHourFrom + s.randInt(config.Cfg.PromptHourTo-config.Cfg.PromptHourFrom)
	minute := s.randInt(60)

	tomorrow := now.AddDate(0, 0, 1)
	fireAt := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, minute, 0, 0, now.Location())
	date := fireAt.Format("2006-01-02")

	msg := queue.StatePromptMessage{
		UserID:       userID,
		Date:         date,
		ScheduledAt:  fireAt.Format(time.RFC3339),
		DelaySeconds: int(fireAt.Sub(now).Seconds()),
	}
	if err := s.publishPrompt(msg); err != nil {
		return fmt.Errorf("failed to schedule next daily prompt: %w", err)
	}

	if err := s.markPrompt(ctx, date, userID); err != nil {
		s.log.Warn("Failed to mark prompt scheduled",
			zap.Int64("user_id", userID),
			zap.String("date", date),
			zap.Error(err),
		)
	}

	return nil
}

// handleAlarmResponse covers alarm-category reactions: confirm appends
// one 확인 record, snooze appends one 미루기 record and queues the fixed
// 10-minute follow-up. Both end with a best-effort push to the partner.
func (s *DispatchService) handleAlarmResponse(ctx context.Context, userID int64, req dto.NotificationResponseRequest) (*dto.NotificationResponseData, error) {
	action := model.NotificationAction(req.Action)
	if action != model.NotificationActionConfirm && action != model.NotificationActionSnooze {
		return &dto.NotificationResponseData{Handled: false}, nil
	}

	if req.AlarmID == "" {
		return nil, pkgerrors.ValidationFailed
	}
	alarmID, err := strconv.ParseInt(req.AlarmID, 10, 64)
	if err != nil {
		return nil, pkgerrors.AlarmNotFound
	}

	alarm, err := s.alarms.FindByPublicID(ctx, alarmID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.AlarmNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query alarm: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	now := s.now()
	record := &model.Response{
		ResponseKey: fmt.Sprintf("%d_%d", alarm.PublicID, now.UnixMilli()),
		AlarmID:     alarm.PublicID,
		UserID:      user.ID,
		PartnerID:   user.PartnerID,
		RespondedAt: now,
	}

	var pushBody string
	switch action {
	case model.NotificationActionConfirm:
		record.Response = model.ReactionConfirm
		pushBody = fmt.Sprintf("%s - 확인했습니다.", alarm.Title)

	case model.NotificationActionSnooze:
		if req.Reason == "" {
			return nil, pkgerrors.DispatchReasonRequired
		}
		record.Response = model.ReactionSnooze
		record.Reason = req.Reason
		record.DelayMinutes = config.Cfg.AlarmSnoozeMinutes
		pushBody = fmt.Sprintf("%s - %d분 미루기 (%s)", alarm.Title, record.DelayMinutes, req.Reason)
	}

	if err := s.responses.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append response: %w", err)
	}

	if action == model.NotificationActionSnooze {
		msg := queue.AlarmFollowupMessage{
			UserID:       user.ID,
			AlarmID:      alarm.PublicID,
			Title:        alarm.Title,
			Reason:       req.Reason,
			DelaySeconds: record.DelayMinutes * 60,
		}
		if err := s.publishFollowup(msg); err != nil {
			return nil, fmt.Errorf("failed to schedule alarm follow-up: %w", err)
		}
	}

	s.notifyPartner(ctx, user, "알림 반응", pushBody, map[string]interface{}{
		"type":     "alarmResponse",
		"alarmId":  strconv.FormatInt(alarm.PublicID, 10),
		"response": record.Response,
	})

	return &dto.NotificationResponseData{
		Handled:    true,
		ResponseID: record.ResponseKey,
	}, nil
}

// notifyPartner queues a push to the linked account with a fresh token
// lookup. Any failure is logged and swallowed; push delivery never fails
// the request that triggered it.
func (s *DispatchService) notifyPartner(ctx context.Context, user *model.User, title, body string, data map[string]interface{}) {
	if user.PartnerID == nil {
		return
	}

	partner, err := s.users.FindByID(ctx, *user.PartnerID)
	if err != nil {
		s.log.Warn("Failed to look up partner for push",
			zap.Int64("user_id", user.ID),
			zap.Int64("partner_id", *user.PartnerID),
			zap.Error(err),
		)
		return
	}
	if partner.ExpoPushToken == "" || !partner.NotificationsEnabled {
		return
	}

	msg := queue.PushMessage{
		Token:    partner.ExpoPushToken,
		Title:    title,
		Body:     body,
		Data:     data,
		Category: "partner",
	}
	if err := s.publishPush(msg); err != nil {
		s.log.Warn("Failed to queue partner push",
			zap.Int64("partner_id", partner.ID),
			zap.Error(err),
		)
	}
}

// ListAlarmResponses returns the reaction records under one alarm,
// newest first, for the guardian's alarm detail view.
func (s *DispatchService) ListAlarmResponses(ctx context.Context, userID int64, alarmIDStr string) ([]dto.ResponseData, error) {
	alarmID, err := strconv.ParseInt(alarmIDStr, 10, 64)
	if err != nil {
		return nil, pkgerrors.AlarmNotFound
	}

	alarm, err := s.alarms.FindByPublicID(ctx, alarmID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.AlarmNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query alarm: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	owned := alarm.UserID == user.ID
	linked := user.PartnerID != nil && alarm.UserID == *user.PartnerID
	if !owned && !linked {
		return nil, pkgerrors.AlarmForbidden
	}

	records, err := s.responses.ListByAlarm(ctx, alarm.PublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	result := make([]dto.ResponseData, 0, len(records))
	for i := range records {
		r := &records[i]
		result = append(result, dto.ResponseData{
			ID:           r.ResponseKey,
			AlarmID:      strconv.FormatInt(r.AlarmID, 10),
			Response:     r.Response,
			Reason:       r.Reason,
			DelayMinutes: r.DelayMinutes,
			RespondedAt:  r.RespondedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}
