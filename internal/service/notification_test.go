package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Ieum/internal/model"
	"Ieum/internal/queue"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/push"
)

type fakeSender struct {
	sent []push.Message
	err  error
}

func (s *fakeSender) Send(ctx context.Context, msg push.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func TestDeliverStatePrompt(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{
		LoginID:              "senior1",
		Role:                 model.UserRoleSenior,
		ExpoPushToken:        "ExponentPushToken[senior]",
		NotificationsEnabled: true,
	})

	sender := &fakeSender{}
	svc := NewNotificationService(users, sender, zap.NewNop())

	err := svc.DeliverStatePrompt(context.Background(), queue.StatePromptMessage{
		UserID: user.ID,
		Date:   "2025-06-11",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, user.ExpoPushToken, sender.sent[0].To)
	assert.Equal(t, "오늘의 기록", sender.sent[0].Title)
	assert.Equal(t, "stateRequest", sender.sent[0].Data["categoryId"])
}

func TestDeliverStatePromptSkipsUnreachableUser(t *testing.T) {
	users := newFakeUserStore()
	muted := users.add(&model.User{
		LoginID:       "senior1",
		Role:          model.UserRoleSenior,
		ExpoPushToken: "ExponentPushToken[senior]",
	})

	sender := &fakeSender{}
	svc := NewNotificationService(users, sender, zap.NewNop())

	var skip *pkgerrors.SkipMessageError

	// notifications disabled
	err := svc.DeliverStatePrompt(context.Background(), queue.StatePromptMessage{UserID: muted.ID})
	assert.ErrorAs(t, err, &skip)

	// user gone
	err = svc.DeliverStatePrompt(context.Background(), queue.StatePromptMessage{UserID: 999})
	assert.ErrorAs(t, err, &skip)

	assert.Empty(t, sender.sent)
}

func TestDeliverAlarmFollowupWithReason(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{
		LoginID:              "senior1",
		Role:                 model.UserRoleSenior,
		ExpoPushToken:        "ExponentPushToken[senior]",
		NotificationsEnabled: true,
	})

	sender := &fakeSender{}
	svc := NewNotificationService(users, sender, zap.NewNop())

	err := svc.DeliverAlarmFollowup(context.Background(), queue.AlarmFollowupMessage{
		UserID:  user.ID,
		AlarmID: 100,
		Title:   "혈압약",
		Reason:  "바빠요",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "혈압약", sender.sent[0].Title)
	assert.Contains(t, sender.sent[0].Body, "바빠요")
	assert.Equal(t, "alarmCategory", sender.sent[0].Data["categoryId"])
	assert.Equal(t, "100", sender.sent[0].Data["alarmId"])
}

func TestDeliverAlarmFollowupForSnoozedPrompt(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{
		LoginID:              "senior1",
		Role:                 model.UserRoleSenior,
		ExpoPushToken:        "ExponentPushToken[senior]",
		NotificationsEnabled: true,
	})

	sender := &fakeSender{}
	svc := NewNotificationService(users, sender, zap.NewNop())

	err := svc.DeliverAlarmFollowup(context.Background(), queue.AlarmFollowupMessage{
		UserID: user.ID,
		Title:  "오늘의 기록",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "stateRequest", sender.sent[0].Data["categoryId"])
}

func TestDeliverPushSwallowsRelayFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("expo unavailable")}
	svc := NewNotificationService(newFakeUserStore(), sender, zap.NewNop())

	err := svc.DeliverPush(context.Background(), queue.PushMessage{
		Token: "ExponentPushToken[x]",
		Title: "알림",
	})
	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
}
