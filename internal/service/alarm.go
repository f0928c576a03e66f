package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	"Ieum/internal/repository"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/pkg/snowflake"
	"Ieum/storage/database"
	"Ieum/utils"
)

var (
	alarmService *AlarmService
	alarmOnce    sync.Once
)

func Alarm() *AlarmService {
	alarmOnce.Do(func() {
		alarmService = NewAlarmService(
			repository.NewAlarmRepository(database.DB()),
			repository.NewUserRepository(database.DB()),
			logger.Logger,
		)
	})
	return alarmService
}

// AlarmStore is the persistence surface AlarmService needs.
type AlarmStore interface {
	Create(ctx context.Context, alarm *model.Alarm) error
	FindByPublicID(ctx context.Context, publicID int64) (*model.Alarm, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Alarm, error)
	Update(ctx context.Context, publicID int64, updates map[string]interface{}) error
	Delete(ctx context.Context, publicID int64) error
}

type AlarmService struct {
	alarms AlarmStore
	users  UserStore
	log    *zap.Logger

	genID func() (int64, error)
	now   func() time.Time
}

func NewAlarmService(alarms AlarmStore, users UserStore, log *zap.Logger) *AlarmService {
	return &AlarmService{
		alarms: alarms,
		users:  users,
		log:    log,
		genID:  snowflake.NextID,
		now:    time.Now,
	}
}

// ResolveCareTarget maps the calling user to the account whose alarms
// and schedules are being managed: seniors act on themselves, guardians
// act on their linked senior.
func (s *AlarmService) ResolveCareTarget(ctx context.Context, userID int64) (int64, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.UserNotFound
		}
		return 0, fmt.Errorf("failed to query user: %w", err)
	}

	if user.Role == model.UserRoleGuardian {
		if user.PartnerID == nil {
			return 0, pkgerrors.PartnerNotLinked
		}
		return *user.PartnerID, nil
	}
	return user.ID, nil
}

func (s *AlarmService) Create(ctx context.Context, userID int64, req dto.CreateAlarmRequest) (*dto.AlarmData, error) {
	if !utils.ValidClock(req.Time) {
		return nil, pkgerrors.ValidationFailed
	}
	for _, day := range req.Days {
		if !model.WeekdaySet(utils.DaysOfWeek).Contains(day) {
			return nil, pkgerrors.ValidationFailed
		}
	}

	targetID, err := s.ResolveCareTarget(ctx, userID)
	if err != nil {
		return nil, err
	}

	publicID, err := s.genID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate alarm ID: %w", err)
	}

	alarm := &model.Alarm{
		PublicID: publicID,
		UserID:   targetID,
		Time:     req.Time,
		Title:    req.Title,
		Detail:   req.Detail,
		Repeat:   req.Repeat,
		Days:     model.WeekdaySet(req.Days),
	}

	if err := s.alarms.Create(ctx, alarm); err != nil {
		return nil, fmt.Errorf("failed to create alarm: %w", err)
	}

	data := alarmToDTO(alarm)
	return &data, nil
}

// List returns the care target's alarms in creation order, fetched
// fresh on every call.
func (s *AlarmService) List(ctx context.Context, userID int64) ([]dto.AlarmData, error) {
	targetID, err := s.ResolveCareTarget(ctx, userID)
	if err != nil {
		return nil, err
	}

	alarms, err := s.alarms.ListByUser(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alarms: %w", err)
	}

	result := make([]dto.AlarmData, 0, len(alarms))
	for i := range alarms {
		result = append(result, alarmToDTO(&alarms[i]))
	}
	return result, nil
}

// Partitioned buckets the care target's alarms for the home screen.
func (s *AlarmService) Partitioned(ctx context.Context, userID int64) (*dto.AlarmPartitionData, error) {
	targetID, err := s.ResolveCareTarget(ctx, userID)
	if err != nil {
		return nil, err
	}

	alarms, err := s.alarms.ListByUser(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alarms: %w", err)
	}

	partition := PartitionAlarms(alarms, s.now())
	return &partition, nil
}

func (s *AlarmService) Update(ctx context.Context, userID int64, alarmID string, req dto.UpdateAlarmRequest) (*dto.AlarmData, error) {
	alarm, err := s.authorizedAlarm(ctx, userID, alarmID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Time != nil {
		if !utils.ValidClock(*req.Time) {
			return nil, pkgerrors.ValidationFailed
		}
		updates["time"] = *req.Time
		alarm.Time = *req.Time
	}
	if req.Title != nil {
		updates["title"] = *req.Title
		alarm.Title = *req.Title
	}
	if req.Detail != nil {
		updates["detail"] = *req.Detail
		alarm.Detail = *req.Detail
	}
	if req.Repeat != nil {
		updates["repeat"] = *req.Repeat
		alarm.Repeat = *req.Repeat
	}
	if req.Days != nil {
		for _, day := range *req.Days {
			if !model.WeekdaySet(utils.DaysOfWeek).Contains(day) {
				return nil, pkgerrors.ValidationFailed
			}
		}
		updates["days"] = model.WeekdaySet(*req.Days)
		alarm.Days = model.WeekdaySet(*req.Days)
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
		alarm.Completed = *req.Completed
	}

	if err := s.alarms.Update(ctx, alarm.PublicID, updates); err != nil {
		return nil, fmt.Errorf("failed to update alarm: %w", err)
	}

	data := alarmToDTO(alarm)
	return &data, nil
}

func (s *AlarmService) Delete(ctx context.Context, userID int64, alarmID string) error {
	alarm, err := s.authorizedAlarm(ctx, userID, alarmID)
	if err != nil {
		return err
	}

	if err := s.alarms.Delete(ctx, alarm.PublicID); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}
	return nil
}

func (s *AlarmService) authorizedAlarm(ctx context.Context, userID int64, alarmID string) (*model.Alarm, error) {
	publicID, err := strconv.ParseInt(alarmID, 10, 64)
	if err != nil {
		return nil, pkgerrors.AlarmNotFound
	}

	alarm, err := s.alarms.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.AlarmNotFound
		}
		return nil, fmt.Errorf("failed to query alarm: %w", err)
	}

	targetID, err := s.ResolveCareTarget(ctx, userID)
	if err != nil {
		return nil, err
	}
	if alarm.UserID != targetID && alarm.UserID != userID {
		return nil, pkgerrors.AlarmForbidden
	}

	return alarm, nil
}

// PartitionAlarms buckets alarms in precedence order: day-set contains
// today, else contains tomorrow, else later. Today's bucket is split
// into past and upcoming around now's minute of day. Pure and stateless,
// recomputed from scratch on every call.
func PartitionAlarms(alarms []model.Alarm, now time.Time) dto.AlarmPartitionData {
	todayLabel := utils.WeekdayLabel(now.Weekday())
	tomorrowLabel := utils.NextWeekdayLabel(now.Weekday())
	nowMinute := utils.MinuteOfDay(now)

	var today, tomorrow, later []model.Alarm
	for _, alarm := range alarms {
		switch {
		case alarm.Days.Contains(todayLabel):
			today = append(today, alarm)
		case alarm.Days.Contains(tomorrowLabel):
			tomorrow = append(tomorrow, alarm)
		default:
			later = append(later, alarm)
		}
	}

	sortChrono := func(list []model.Alarm) {
		sort.SliceStable(list, func(i, j int) bool {
			a, _ := utils.ParseClock(list[i].Time)
			b, _ := utils.ParseClock(list[j].Time)
			return a < b
		})
	}
	sortChrono(today)
	sortChrono(tomorrow)
	sortChrono(later)

	var past, upcoming []model.Alarm
	for _, alarm := range today {
		minute, err := utils.ParseClock(alarm.Time)
		if err == nil && minute < nowMinute {
			past = append(past, alarm)
		} else {
			upcoming = append(upcoming, alarm)
		}
	}

	return dto.AlarmPartitionData{
		Today: dto.TodayPartition{
			Past:     alarmsToDTO(past),
			Upcoming: alarmsToDTO(upcoming),
		},
		Tomorrow: alarmsToDTO(tomorrow),
		Later:    alarmsToDTO(later),
	}
}

func alarmToDTO(alarm *model.Alarm) dto.AlarmData {
	days := alarm.Days
	if days == nil {
		days = model.WeekdaySet{}
	}
	return dto.AlarmData{
		ID:        strconv.FormatInt(alarm.PublicID, 10),
		Time:      alarm.Time,
		Title:     alarm.Title,
		Detail:    alarm.Detail,
		Repeat:    alarm.Repeat,
		Days:      days,
		Completed: alarm.Completed,
		CreatedAt: alarm.CreatedAt.Format(time.RFC3339),
	}
}

func alarmsToDTO(alarms []model.Alarm) []dto.AlarmData {
	result := make([]dto.AlarmData, 0, len(alarms))
	for i := range alarms {
		result = append(result, alarmToDTO(&alarms[i]))
	}
	return result
}
