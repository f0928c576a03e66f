package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ScheduleDay holds every calendar entry of one user for one date as a
// single JSONB array. Mutations read the array, edit it in memory and
// write the whole array back, so concurrent writers are last-writer-wins
// and entries are addressed by position, not by id.
type ScheduleDay struct {
	BaseModel
	UserID int64         `gorm:"not null;uniqueIndex:idx_schedule_days_user_date" json:"user_id"`
	Date   string        `gorm:"type:date;not null;uniqueIndex:idx_schedule_days_user_date" json:"date"`
	Items  ScheduleItems `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
}

func (ScheduleDay) TableName() string {
	return "schedule_days"
}

// ScheduleItem is one calendar entry. StatusValue true means the user is
// available at Time; meeting matching intersects on the exact Time string.
type ScheduleItem struct {
	Time        string `json:"time"`
	Content     string `json:"content"`
	StatusType  string `json:"statusType"`
	StatusValue bool   `json:"statusValue"`
}

// ScheduleItems is the JSONB array of a day's entries.
type ScheduleItems []ScheduleItem

func (s ScheduleItems) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]ScheduleItem{})
	}
	return json.Marshal(s)
}

func (s *ScheduleItems) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal ScheduleItems value")
	}
	return json.Unmarshal(bytes, s)
}
