package model

import "time"

// StateCheckIn is a daily mood share from the senior: a photo plus an
// emotion label, optionally answered by one guardian comment.
type StateCheckIn struct {
	BaseModel
	PublicID    int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID      int64      `gorm:"not null;index:idx_state_check_ins_user" json:"user_id"`
	PhotoURL    string     `gorm:"type:varchar(512);not null" json:"photo_url"`
	Emotion     string     `gorm:"type:varchar(32);not null" json:"emotion"`
	Comment     string     `gorm:"type:varchar(255);not null;default:''" json:"comment"`
	CommentedAt *time.Time `gorm:"type:timestamptz" json:"commented_at,omitempty"`
}

func (StateCheckIn) TableName() string {
	return "state_check_ins"
}
