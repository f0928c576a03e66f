package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Ieum/internal/model"
)

// CheckInRepository handles database operations for StateCheckIn.
type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) Create(ctx context.Context, checkIn *model.StateCheckIn) error {
	return r.db.WithContext(ctx).Create(checkIn).Error
}

func (r *CheckInRepository) FindByPublicID(ctx context.Context, publicID int64) (*model.StateCheckIn, error) {
	var checkIn model.StateCheckIn
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&checkIn).Error
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *CheckInRepository) LatestByUser(ctx context.Context, userID int64) (*model.StateCheckIn, error) {
	var checkIn model.StateCheckIn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&checkIn).Error
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *CheckInRepository) SetComment(ctx context.Context, publicID int64, comment string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.StateCheckIn{}).
		Where("public_id = ?", publicID).
		Updates(map[string]interface{}{
			"comment":      comment,
			"commented_at": now,
		}).Error
}
