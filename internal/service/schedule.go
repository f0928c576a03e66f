package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	"Ieum/internal/repository"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/storage/database"
	"Ieum/utils"
)

var (
	scheduleService *ScheduleService
	scheduleOnce    sync.Once
)

func Schedule() *ScheduleService {
	scheduleOnce.Do(func() {
		scheduleService = NewScheduleService(
			repository.NewScheduleRepository(database.DB()),
			repository.NewUserRepository(database.DB()),
			logger.Logger,
		)
	})
	return scheduleService
}

// ScheduleStore is the persistence surface ScheduleService needs.
type ScheduleStore interface {
	GetDay(ctx context.Context, userID int64, date string) (*model.ScheduleDay, error)
	PutDay(ctx context.Context, day *model.ScheduleDay) error
	ListMonth(ctx context.Context, userID int64, month string) ([]model.ScheduleDay, error)
}

type ScheduleService struct {
	schedules ScheduleStore
	users     UserStore
	log       *zap.Logger
}

func NewScheduleService(schedules ScheduleStore, users UserStore, log *zap.Logger) *ScheduleService {
	return &ScheduleService{schedules: schedules, users: users, log: log}
}

// AppendItem reads the whole day array, appends in memory and writes the
// array back. Two concurrent appends from different devices can silently
// overwrite each other; this last-writer-wins behavior is accepted.
func (s *ScheduleService) AppendItem(ctx context.Context, userID int64, req dto.AppendScheduleItemRequest) (*dto.ScheduleDayData, error) {
	if !utils.ValidDate(req.Date) {
		return nil, pkgerrors.ScheduleDateInvalid
	}
	if req.Item.Time == "" || req.Item.Content == "" {
		return nil, pkgerrors.ValidationFailed
	}

	day, err := s.schedules.GetDay(ctx, userID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule day: %w", err)
	}

	day.Items = append(day.Items, model.ScheduleItem{
		Time:        req.Item.Time,
		Content:     req.Item.Content,
		StatusType:  req.Item.StatusType,
		StatusValue: req.Item.StatusValue,
	})

	if err := s.schedules.PutDay(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to write schedule day: %w", err)
	}

	data := scheduleDayToDTO(day)
	return &data, nil
}

// DeleteItem removes the entry at the index observed at read time.
// Entries have no stable ids, so a concurrent edit can shift which
// entry the index lands on.
func (s *ScheduleService) DeleteItem(ctx context.Context, userID int64, date string, index int) (*dto.ScheduleDayData, error) {
	if !utils.ValidDate(date) {
		return nil, pkgerrors.ScheduleDateInvalid
	}

	day, err := s.schedules.GetDay(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule day: %w", err)
	}

	if index < 0 || index >= len(day.Items) {
		return nil, pkgerrors.ScheduleIndexInvalid
	}

	day.Items = append(day.Items[:index], day.Items[index+1:]...)

	if err := s.schedules.PutDay(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to write schedule day: %w", err)
	}

	data := scheduleDayToDTO(day)
	return &data, nil
}

func (s *ScheduleService) Day(ctx context.Context, userID int64, date string) (*dto.ScheduleDayData, error) {
	if !utils.ValidDate(date) {
		return nil, pkgerrors.ScheduleDateInvalid
	}

	day, err := s.schedules.GetDay(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule day: %w", err)
	}

	data := scheduleDayToDTO(day)
	return &data, nil
}

// Month returns every saved day of the month in one call.
func (s *ScheduleService) Month(ctx context.Context, userID int64, month string) (*dto.ScheduleMonthData, error) {
	if !utils.ValidMonth(month) {
		return nil, pkgerrors.ScheduleDateInvalid
	}

	days, err := s.schedules.ListMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule month: %w", err)
	}

	result := &dto.ScheduleMonthData{
		Month: month,
		Days:  make(map[string][]dto.ScheduleItemDTO, len(days)),
	}
	for i := range days {
		result.Days[days[i].Date] = scheduleItemsToDTO(days[i].Items)
	}
	return result, nil
}

// PartnerID resolves the linked account, for guardian reads of the
// senior's calendar and for meeting matching.
func (s *ScheduleService) PartnerID(ctx context.Context, userID int64) (int64, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.UserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query user: %w", err)
	}
	if user.PartnerID == nil {
		return 0, pkgerrors.PartnerNotLinked
	}
	return *user.PartnerID, nil
}

// MeetingTimes intersects the caller's and the partner's entries for
// one date.
func (s *ScheduleService) MeetingTimes(ctx context.Context, userID int64, date string) (*dto.MeetingTimesData, error) {
	if !utils.ValidDate(date) {
		return nil, pkgerrors.ScheduleDateInvalid
	}

	partnerID, err := s.PartnerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	mine, err := s.schedules.GetDay(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule day: %w", err)
	}
	theirs, err := s.schedules.GetDay(ctx, partnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read partner schedule day: %w", err)
	}

	return &dto.MeetingTimesData{
		Date:  date,
		Times: MatchMeetingTimes(mine.Items, theirs.Items),
	}, nil
}

// MatchMeetingTimes returns the time strings where both sides have an
// available entry. Comparison is exact string equality, no normalization
// of time formats; "9:00" and "09:00" do not match.
func MatchMeetingTimes(a, b model.ScheduleItems) []string {
	times := []string{}
	seen := map[string]bool{}

	for _, itemA := range a {
		if !itemA.StatusValue || seen[itemA.Time] {
			continue
		}
		for _, itemB := range b {
			if itemB.StatusValue && itemB.Time == itemA.Time {
				times = append(times, itemA.Time)
				seen[itemA.Time] = true
				break
			}
		}
	}

	return times
}

func scheduleDayToDTO(day *model.ScheduleDay) dto.ScheduleDayData {
	return dto.ScheduleDayData{
		Date:  day.Date,
		Items: scheduleItemsToDTO(day.Items),
	}
}

func scheduleItemsToDTO(items model.ScheduleItems) []dto.ScheduleItemDTO {
	result := make([]dto.ScheduleItemDTO, 0, len(items))
	for _, item := range items {
		result = append(result, dto.ScheduleItemDTO{
			Time:        item.Time,
			Content:     item.Content,
			StatusType:  item.StatusType,
			StatusValue: item.StatusValue,
		})
	}
	return result
}
