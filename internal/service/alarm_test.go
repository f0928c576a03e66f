package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	pkgerrors "Ieum/pkg/errors"
)

func newTestAlarmService(alarms *fakeAlarmStore, users *fakeUserStore) *AlarmService {
	svc := NewAlarmService(alarms, users, zap.NewNop())
	nextID := int64(1000)
	svc.genID = func() (int64, error) {
		nextID++
		return nextID, nil
	}
	return svc
}

// 2025-06-11 is a Wednesday (수).
var partitionNow = time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC)

func TestPartitionAlarmsBuckets(t *testing.T) {
	alarms := []model.Alarm{
		{PublicID: 1, Time: "11:00", Title: "점심 약", Days: model.WeekdaySet{"수"}},
		{PublicID: 2, Time: "09:00", Title: "아침 약", Days: model.WeekdaySet{"수"}},
		{PublicID: 3, Time: "08:00", Title: "산책", Days: model.WeekdaySet{"목"}},
		{PublicID: 4, Time: "07:00", Title: "병원", Days: model.WeekdaySet{"금"}},
		{PublicID: 5, Time: "06:00", Title: "체조", Days: model.WeekdaySet{}},
	}

	result := PartitionAlarms(alarms, partitionNow)

	require.Len(t, result.Today.Past, 1)
	assert.Equal(t, "09:00", result.Today.Past[0].Time)

	require.Len(t, result.Today.Upcoming, 1)
	assert.Equal(t, "11:00", result.Today.Upcoming[0].Time)

	require.Len(t, result.Tomorrow, 1)
	assert.Equal(t, "08:00", result.Tomorrow[0].Time)

	require.Len(t, result.Later, 2)
}

func TestPartitionAlarmsPrecedence(t *testing.T) {
	// a day set holding both today and tomorrow lands in today only
	alarms := []model.Alarm{
		{PublicID: 1, Time: "15:00", Days: model.WeekdaySet{"수", "목"}},
	}

	result := PartitionAlarms(alarms, partitionNow)

	assert.Len(t, result.Today.Upcoming, 1)
	assert.Empty(t, result.Tomorrow)
	assert.Empty(t, result.Later)
}

func TestPartitionAlarmsBoundaryMinute(t *testing.T) {
	// an alarm at exactly now's minute is upcoming, not past
	alarms := []model.Alarm{
		{PublicID: 1, Time: "10:30", Days: model.WeekdaySet{"수"}},
		{PublicID: 2, Time: "10:29", Days: model.WeekdaySet{"수"}},
	}

	result := PartitionAlarms(alarms, partitionNow)

	require.Len(t, result.Today.Past, 1)
	assert.Equal(t, "10:29", result.Today.Past[0].Time)
	require.Len(t, result.Today.Upcoming, 1)
	assert.Equal(t, "10:30", result.Today.Upcoming[0].Time)
}

func TestPartitionAlarmsChronologicalOrder(t *testing.T) {
	alarms := []model.Alarm{
		{PublicID: 1, Time: "19:00", Days: model.WeekdaySet{"수"}},
		{PublicID: 2, Time: "12:00", Days: model.WeekdaySet{"수"}},
		{PublicID: 3, Time: "15:30", Days: model.WeekdaySet{"수"}},
	}

	result := PartitionAlarms(alarms, partitionNow)

	require.Len(t, result.Today.Upcoming, 3)
	assert.Equal(t, "12:00", result.Today.Upcoming[0].Time)
	assert.Equal(t, "15:30", result.Today.Upcoming[1].Time)
	assert.Equal(t, "19:00", result.Today.Upcoming[2].Time)
}

func TestPartitionAlarmsEmptyBucketsAreNotNil(t *testing.T) {
	result := PartitionAlarms(nil, partitionNow)

	assert.NotNil(t, result.Today.Past)
	assert.NotNil(t, result.Today.Upcoming)
	assert.NotNil(t, result.Tomorrow)
	assert.NotNil(t, result.Later)
}

func TestResolveCareTargetGuardian(t *testing.T) {
	users := newFakeUserStore()
	senior := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})
	guardian := users.add(&model.User{LoginID: "guardian1", Role: model.UserRoleGuardian, PartnerID: &senior.ID})

	svc := newTestAlarmService(newFakeAlarmStore(), users)

	targetID, err := svc.ResolveCareTarget(context.Background(), guardian.ID)
	require.NoError(t, err)
	assert.Equal(t, senior.ID, targetID)
}

func TestResolveCareTargetGuardianUnlinked(t *testing.T) {
	users := newFakeUserStore()
	guardian := users.add(&model.User{LoginID: "guardian1", Role: model.UserRoleGuardian})

	svc := newTestAlarmService(newFakeAlarmStore(), users)

	_, err := svc.ResolveCareTarget(context.Background(), guardian.ID)
	assert.ErrorIs(t, err, pkgerrors.PartnerNotLinked)
}

func TestCreateAlarmForCareTarget(t *testing.T) {
	users := newFakeUserStore()
	senior := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})
	guardian := users.add(&model.User{LoginID: "guardian1", Role: model.UserRoleGuardian, PartnerID: &senior.ID})

	alarms := newFakeAlarmStore()
	svc := newTestAlarmService(alarms, users)

	data, err := svc.Create(context.Background(), guardian.ID, dto.CreateAlarmRequest{
		Time:   "08:30",
		Title:  "혈압약",
		Repeat: true,
		Days:   []string{"월", "수", "금"},
	})
	require.NoError(t, err)
	assert.Equal(t, "08:30", data.Time)

	// the alarm belongs to the senior, not the guardian
	owned, err := alarms.ListByUser(context.Background(), senior.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestCreateAlarmReadsBackWithDefaults(t *testing.T) {
	users := newFakeUserStore()
	senior := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestAlarmService(newFakeAlarmStore(), users)

	created, err := svc.Create(context.Background(), senior.ID, dto.CreateAlarmRequest{
		Time:   "07:30",
		Title:  "약 복용",
		Repeat: true,
		Days:   []string{"월"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	list, err := svc.List(context.Background(), senior.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "07:30", list[0].Time)
	assert.Equal(t, "약 복용", list[0].Title)
	assert.Equal(t, []string{"월"}, []string(list[0].Days))
	assert.True(t, list[0].Repeat)
	assert.False(t, list[0].Completed)
}

func TestCreateAlarmRejectsBadInput(t *testing.T) {
	users := newFakeUserStore()
	senior := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})

	svc := newTestAlarmService(newFakeAlarmStore(), users)

	_, err := svc.Create(context.Background(), senior.ID, dto.CreateAlarmRequest{Time: "25:00", Title: "x"})
	assert.ErrorIs(t, err, pkgerrors.ValidationFailed)

	_, err = svc.Create(context.Background(), senior.ID, dto.CreateAlarmRequest{Time: "08:00", Title: "x", Days: []string{"Mon"}})
	assert.ErrorIs(t, err, pkgerrors.ValidationFailed)
}

func TestUpdateAlarmForbiddenForStranger(t *testing.T) {
	users := newFakeUserStore()
	owner := users.add(&model.User{LoginID: "senior1", Role: model.UserRoleSenior})
	stranger := users.add(&model.User{LoginID: "senior2", Role: model.UserRoleSenior})

	alarms := newFakeAlarmStore()
	svc := newTestAlarmService(alarms, users)

	created, err := svc.Create(context.Background(), owner.ID, dto.CreateAlarmRequest{Time: "08:00", Title: "약"})
	require.NoError(t, err)

	completed := true
	_, err = svc.Update(context.Background(), stranger.ID, created.ID, dto.UpdateAlarmRequest{Completed: &completed})
	assert.ErrorIs(t, err, pkgerrors.AlarmForbidden)
}
