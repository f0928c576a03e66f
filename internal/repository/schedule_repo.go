package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Ieum/internal/model"
)

// ScheduleRepository stores one JSONB item array per (user, date).
// Callers read the day, mutate the array in memory and write it back
// whole, so concurrent writers are last-writer-wins.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetDay returns the day row, or an empty day when none exists yet.
func (r *ScheduleRepository) GetDay(ctx context.Context, userID int64, date string) (*model.ScheduleDay, error) {
	var day model.ScheduleDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.ScheduleDay{
			UserID: userID,
			Date:   date,
			Items:  model.ScheduleItems{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// PutDay writes the whole item array back. A day that was never saved
// before is created on first write.
func (r *ScheduleRepository) PutDay(ctx context.Context, day *model.ScheduleDay) error {
	if day.ID == 0 {
		return r.db.WithContext(ctx).Create(day).Error
	}
	return r.db.WithContext(ctx).Model(day).Update("items", day.Items).Error
}

// ListMonth returns every saved day of (user, yyyy-mm).
func (r *ScheduleRepository) ListMonth(ctx context.Context, userID int64, month string) ([]model.ScheduleDay, error) {
	var days []model.ScheduleDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND to_char(date, 'YYYY-MM') = ?", userID, month).
		Order("date ASC").
		Find(&days).Error
	return days, err
}
