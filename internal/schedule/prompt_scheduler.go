package schedule

// Daily prompt scheduler: scans seniors with notifications enabled and
// queues each one's state-request prompt at a fresh random time in the
// configured window. The draw is repeated every day and never persisted
// as a fixed slot.

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"Ieum/config"
	"Ieum/internal/cache"
	"Ieum/internal/model"
	"Ieum/internal/queue"
	"Ieum/internal/repository"
	"Ieum/pkg/logger"
	"Ieum/storage/database"
)

var (
	schedulerOnce sync.Once
	schedulerInst *PromptScheduler
)

// SeniorLister returns the users eligible for the daily prompt.
type SeniorLister interface {
	ListSeniorsWithNotifications(ctx context.Context) ([]model.User, error)
}

type PromptScheduler struct {
	users  SeniorLister
	logger *zap.Logger

	jobMu      sync.Mutex
	jobRunning bool
	lastRunAt  time.Time

	now         func() time.Time
	randInt     func(n int) int
	isScheduled func(ctx context.Context, date string, userID int64) (bool, error)
	mark        func(ctx context.Context, date string, userID int64) error
	publish     func(msg queue.StatePromptMessage) error
}

func GetScheduler() *PromptScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = NewPromptScheduler(
			repository.NewUserRepository(database.DB()),
			logger.Logger,
		)
	})
	return schedulerInst
}

func NewPromptScheduler(users SeniorLister, log *zap.Logger) *PromptScheduler {
	return &PromptScheduler{
		users:       users,
		logger:      log,
		now:         time.Now,
		randInt:     rand.Intn,
		isScheduled: cache.IsPromptScheduled,
		mark:        cache.MarkPromptScheduled,
		publish:     queue.PublishStatePrompt,
	}
}

// ScheduleDailyPrompts runs one scan. Safe to call repeatedly; users
// whose prompt for today is already queued are skipped, and a draw whose
// time already passed waits for tomorrow's scan.
func (s *PromptScheduler) ScheduleDailyPrompts(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Prompt job already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	now := s.now()
	s.lastRunAt = now
	today := now.Format("2006-01-02")

	users, err := s.users.ListSeniorsWithNotifications(ctx)
	if err != nil {
		s.logger.Error("Failed to query seniors", zap.Error(err))
		return fmt.Errorf("failed to query seniors: %w", err)
	}

	if len(users) == 0 {
		s.logger.Info("No seniors with notifications enabled")
		return nil
	}

	scheduled := 0
	for i := range users {
		user := &users[i]

		already, err := s.isScheduled(ctx, today, user.ID)
		if err != nil {
			s.logger.Warn("Failed to check prompt scheduled status",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
			continue
		}
		if already {
			continue
		}

		fireAt := s.drawPromptTime(now)
		if !fireAt.After(now) {
			// drawn slot already passed for today
			continue
		}

		msg := queue.StatePromptMessage{
			UserID:       user.ID,
			Date:         today,
			ScheduledAt:  fireAt.Format(time.RFC3339),
			DelaySeconds: int(fireAt.Sub(now).Seconds()),
		}
		if err := s.publish(msg); err != nil {
			s.logger.Error("Failed to publish state prompt",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
			continue
		}

		if err := s.mark(ctx, today, user.ID); err != nil {
			s.logger.Warn("Failed to mark prompt scheduled",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
		scheduled++
	}

	s.logger.Info("Daily prompt scan finished",
		zap.Int("user_count", len(users)),
		zap.Int("scheduled", scheduled),
		zap.Duration("elapsed", s.now().Sub(now)),
	)

	return nil
}

// drawPromptTime picks a uniform clock time in the configured window on
// now's date.
func (s *PromptScheduler) drawPromptTime(now time.Time) time.Time {
	hour := config.Cfg.PromptHourFrom + s.randInt(config.Cfg.PromptHourTo-config.Cfg.PromptHourFrom)
	minute := s.randInt(60)
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}
