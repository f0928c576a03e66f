package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	pkgerrors "Ieum/pkg/errors"
)

func newTestScheduleService(schedules *fakeScheduleStore, users *fakeUserStore) *ScheduleService {
	return NewScheduleService(schedules, users, zap.NewNop())
}

func TestMatchMeetingTimes(t *testing.T) {
	senior := model.ScheduleItems{
		{Time: "09:00", Content: "가능", StatusValue: true},
		{Time: "14:00", Content: "병원", StatusValue: false},
		{Time: "16:00", Content: "가능", StatusValue: true},
	}
	guardian := model.ScheduleItems{
		{Time: "09:00", Content: "가능", StatusValue: true},
		{Time: "14:00", Content: "가능", StatusValue: true},
		{Time: "17:00", Content: "가능", StatusValue: true},
	}

	times := MatchMeetingTimes(senior, guardian)

	assert.Equal(t, []string{"09:00"}, times)
}

func TestMatchMeetingTimesNoNormalization(t *testing.T) {
	// "9:00" and "09:00" are different strings and never match
	a := model.ScheduleItems{{Time: "9:00", StatusValue: true}}
	b := model.ScheduleItems{{Time: "09:00", StatusValue: true}}

	assert.Empty(t, MatchMeetingTimes(a, b))
}

func TestMatchMeetingTimesDeduplicates(t *testing.T) {
	a := model.ScheduleItems{
		{Time: "10:00", StatusValue: true},
		{Time: "10:00", StatusValue: true},
	}
	b := model.ScheduleItems{{Time: "10:00", StatusValue: true}}

	assert.Equal(t, []string{"10:00"}, MatchMeetingTimes(a, b))
}

func TestMatchMeetingTimesEmptyIsNotNil(t *testing.T) {
	times := MatchMeetingTimes(nil, nil)
	assert.NotNil(t, times)
	assert.Empty(t, times)
}

func TestAppendItemReadModifyWrite(t *testing.T) {
	schedules := newFakeScheduleStore()
	users := newFakeUserStore()
	user := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestScheduleService(schedules, users)

	item := dto.ScheduleItemDTO{Time: "09:00", Content: "병원 방문", StatusType: "일정", StatusValue: true}
	data, err := svc.AppendItem(context.Background(), user.ID, dto.AppendScheduleItemRequest{
		Date: "2025-06-11",
		Item: item,
	})
	require.NoError(t, err)
	require.Len(t, data.Items, 1)

	data, err = svc.AppendItem(context.Background(), user.ID, dto.AppendScheduleItemRequest{
		Date: "2025-06-11",
		Item: dto.ScheduleItemDTO{Time: "14:00", Content: "산책", StatusValue: true},
	})
	require.NoError(t, err)
	require.Len(t, data.Items, 2)
	assert.Equal(t, "09:00", data.Items[0].Time)
	assert.Equal(t, "14:00", data.Items[1].Time)
}

func TestAppendItemValidation(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestScheduleService(newFakeScheduleStore(), users)

	_, err := svc.AppendItem(context.Background(), user.ID, dto.AppendScheduleItemRequest{
		Date: "2025/06/11",
		Item: dto.ScheduleItemDTO{Time: "09:00", Content: "x"},
	})
	assert.ErrorIs(t, err, pkgerrors.ScheduleDateInvalid)

	_, err = svc.AppendItem(context.Background(), user.ID, dto.AppendScheduleItemRequest{
		Date: "2025-06-11",
		Item: dto.ScheduleItemDTO{Time: "", Content: "x"},
	})
	assert.ErrorIs(t, err, pkgerrors.ValidationFailed)
}

func TestDeleteItemByPosition(t *testing.T) {
	schedules := newFakeScheduleStore()
	users := newFakeUserStore()
	user := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestScheduleService(schedules, users)

	for _, item := range []dto.ScheduleItemDTO{
		{Time: "09:00", Content: "첫째"},
		{Time: "12:00", Content: "둘째"},
		{Time: "18:00", Content: "셋째"},
	} {
		_, err := svc.AppendItem(context.Background(), user.ID, dto.AppendScheduleItemRequest{
			Date: "2025-06-11",
			Item: item,
		})
		require.NoError(t, err)
	}

	data, err := svc.DeleteItem(context.Background(), user.ID, "2025-06-11", 1)
	require.NoError(t, err)
	require.Len(t, data.Items, 2)
	assert.Equal(t, "첫째", data.Items[0].Content)
	assert.Equal(t, "셋째", data.Items[1].Content)
}

func TestDeleteItemIndexOutOfRange(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestScheduleService(newFakeScheduleStore(), users)

	_, err := svc.DeleteItem(context.Background(), user.ID, "2025-06-11", 0)
	assert.ErrorIs(t, err, pkgerrors.ScheduleIndexInvalid)

	_, err = svc.DeleteItem(context.Background(), user.ID, "2025-06-11", -1)
	assert.ErrorIs(t, err, pkgerrors.ScheduleIndexInvalid)
}

func TestDayReturnsEmptyForUnsavedDate(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestScheduleService(newFakeScheduleStore(), users)

	data, err := svc.Day(context.Background(), user.ID, "2025-06-11")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-11", data.Date)
	assert.Empty(t, data.Items)
}

func TestMeetingTimesRequiresLink(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestScheduleService(newFakeScheduleStore(), users)

	_, err := svc.MeetingTimes(context.Background(), user.ID, "2025-06-11")
	assert.ErrorIs(t, err, pkgerrors.PartnerNotLinked)
}

func TestMeetingTimesAcrossPartners(t *testing.T) {
	schedules := newFakeScheduleStore()
	users := newFakeUserStore()
	senior := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})
	guardian := users.add(&model.User{LoginID: "guardian1", Role: model.UserRoleGuardian, PartnerID: &senior.ID})
	senior.PartnerID = &guardian.ID

	svc := newTestScheduleService(schedules, users)

	_, err := svc.AppendItem(context.Background(), senior.ID, dto.AppendScheduleItemRequest{
		Date: "2025-06-11",
		Item: dto.ScheduleItemDTO{Time: "09:00", Content: "가능", StatusValue: true},
	})
	require.NoError(t, err)

	_, err = svc.AppendItem(context.Background(), guardian.ID, dto.AppendScheduleItemRequest{
		Date: "2025-06-11",
		Item: dto.ScheduleItemDTO{Time: "09:00", Content: "가능", StatusValue: true},
	})
	require.NoError(t, err)

	data, err := svc.MeetingTimes(context.Background(), guardian.ID, "2025-06-11")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, data.Times)
}
