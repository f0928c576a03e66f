package repository

import (
	"context"

	"gorm.io/gorm"

	"Ieum/internal/model"
)

// ResponseRepository handles the append-only reaction records.
type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Append inserts one reaction. The unique response key makes a replayed
// dispatch a conflict instead of a duplicate row.
func (r *ResponseRepository) Append(ctx context.Context, response *model.Response) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *ResponseRepository) ListByAlarm(ctx context.Context, alarmID int64) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.WithContext(ctx).
		Where("alarm_id = ?", alarmID).
		Order("responded_at DESC").
		Find(&responses).Error
	return responses, err
}
