package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Alarm is a medication or routine reminder. Time is the clock string the
// client entered ("HH:MM"); Days holds Korean weekday labels (월..일).
// Device-side notification scheduling is not tracked here, the record is
// the shared source of truth only.
type Alarm struct {
	BaseModel
	PublicID  int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID    int64      `gorm:"not null;index:idx_alarms_user" json:"user_id"`
	Time      string     `gorm:"type:varchar(5);not null" json:"time"`
	Title     string     `gorm:"type:varchar(128);not null" json:"title"`
	Detail    string     `gorm:"type:varchar(512);not null;default:''" json:"detail"`
	Repeat    bool       `gorm:"not null;default:false" json:"repeat"`
	Days      WeekdaySet `gorm:"type:jsonb;not null;default:'[]'" json:"days"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
}

func (Alarm) TableName() string {
	return "alarms"
}

// WeekdaySet is a JSONB array of weekday labels.
type WeekdaySet []string

func (w WeekdaySet) Value() (driver.Value, error) {
	if w == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(w)
}

func (w *WeekdaySet) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal WeekdaySet value")
	}
	return json.Unmarshal(bytes, w)
}

// Contains reports whether the label (e.g. "월") is in the set.
func (w WeekdaySet) Contains(label string) bool {
	for _, d := range w {
		if d == label {
			return true
		}
	}
	return false
}
