package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Ieum/internal/model"
	"Ieum/internal/queue"
)

type fakeSeniorLister struct {
	users []model.User
	err   error
}

func (f *fakeSeniorLister) ListSeniorsWithNotifications(ctx context.Context) ([]model.User, error) {
	return f.users, f.err
}

type schedulerFixture struct {
	s         *PromptScheduler
	published []queue.StatePromptMessage
	marked    map[int64]bool
	already   map[int64]bool
}

func newSchedulerFixture(users []model.User) *schedulerFixture {
	f := &schedulerFixture{
		marked:  map[int64]bool{},
		already: map[int64]bool{},
	}
	f.s = NewPromptScheduler(&fakeSeniorLister{users: users}, zap.NewNop())
	f.s.now = func() time.Time {
		// just past midnight, the whole draw window still ahead
		return time.Date(2025, 6, 11, 0, 5, 0, 0, time.UTC)
	}
	f.s.randInt = func(n int) int { return 0 }
	f.s.isScheduled = func(ctx context.Context, date string, userID int64) (bool, error) {
		return f.already[userID], nil
	}
	f.s.mark = func(ctx context.Context, date string, userID int64) error {
		f.marked[userID] = true
		return nil
	}
	f.s.publish = func(msg queue.StatePromptMessage) error {
		f.published = append(f.published, msg)
		return nil
	}
	return f
}

func seniorUser(id int64) model.User {
	user := model.User{Role: model.UserRoleSenior, NotificationsEnabled: true}
	user.ID = id
	return user
}

func TestScheduleDailyPromptsQueuesEachSenior(t *testing.T) {
	f := newSchedulerFixture([]model.User{seniorUser(1), seniorUser(2)})

	require.NoError(t, f.s.ScheduleDailyPrompts(context.Background()))

	require.Len(t, f.published, 2)
	assert.Equal(t, "2025-06-11", f.published[0].Date)
	assert.True(t, f.marked[1])
	assert.True(t, f.marked[2])
}

func TestScheduleDailyPromptsSkipsAlreadyScheduled(t *testing.T) {
	f := newSchedulerFixture([]model.User{seniorUser(1), seniorUser(2)})
	f.already[1] = true

	require.NoError(t, f.s.ScheduleDailyPrompts(context.Background()))

	require.Len(t, f.published, 1)
	assert.Equal(t, int64(2), f.published[0].UserID)
}

func TestScheduleDailyPromptsDrawInsideWindow(t *testing.T) {
	f := newSchedulerFixture([]model.User{seniorUser(1)})
	f.s.randInt = func(n int) int { return n - 1 }

	require.NoError(t, f.s.ScheduleDailyPrompts(context.Background()))

	require.Len(t, f.published, 1)
	fireAt, err := time.Parse(time.RFC3339, f.published[0].ScheduledAt)
	require.NoError(t, err)
	assert.Equal(t, 19, fireAt.Hour())
	assert.Equal(t, 59, fireAt.Minute())
	assert.Positive(t, f.published[0].DelaySeconds)
}

func TestScheduleDailyPromptsSkipsPassedDraw(t *testing.T) {
	f := newSchedulerFixture([]model.User{seniorUser(1)})

	// running mid-evening, the lowest draw (06:00) already passed
	f.s.now = func() time.Time {
		return time.Date(2025, 6, 11, 21, 0, 0, 0, time.UTC)
	}

	require.NoError(t, f.s.ScheduleDailyPrompts(context.Background()))

	assert.Empty(t, f.published)
	assert.Empty(t, f.marked)
}

func TestScheduleDailyPromptsPropagatesListError(t *testing.T) {
	f := newSchedulerFixture(nil)
	f.s.users = &fakeSeniorLister{err: errors.New("connection refused")}

	assert.Error(t, f.s.ScheduleDailyPrompts(context.Background()))
}

func TestScheduleDailyPromptsNoSeniors(t *testing.T) {
	f := newSchedulerFixture(nil)

	require.NoError(t, f.s.ScheduleDailyPrompts(context.Background()))
	assert.Empty(t, f.published)
}
