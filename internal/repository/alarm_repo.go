package repository

import (
	"context"

	"gorm.io/gorm"

	"Ieum/internal/model"
)

// AlarmRepository handles database operations for Alarm.
type AlarmRepository struct {
	db *gorm.DB
}

func NewAlarmRepository(db *gorm.DB) *AlarmRepository {
	return &AlarmRepository{db: db}
}

func (r *AlarmRepository) Create(ctx context.Context, alarm *model.Alarm) error {
	return r.db.WithContext(ctx).Create(alarm).Error
}

func (r *AlarmRepository) FindByPublicID(ctx context.Context, publicID int64) (*model.Alarm, error) {
	var alarm model.Alarm
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&alarm).Error
	if err != nil {
		return nil, err
	}
	return &alarm, nil
}

// ListByUser returns the user's alarms in creation order.
func (r *AlarmRepository) ListByUser(ctx context.Context, userID int64) ([]model.Alarm, error) {
	var alarms []model.Alarm
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&alarms).Error
	return alarms, err
}

func (r *AlarmRepository) Update(ctx context.Context, publicID int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Alarm{}).
		Where("public_id = ?", publicID).
		Updates(updates).Error
}

func (r *AlarmRepository) Delete(ctx context.Context, publicID int64) error {
	return r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&model.Alarm{}).Error
}
