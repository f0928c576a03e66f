package model

import "time"

// Reaction labels stored on responses, kept in Korean as the client
// renders them verbatim.
const (
	ReactionConfirm = "확인"
	ReactionSnooze  = "미루기"
)

// Response is an append-only reaction record for one alarm notification.
// ResponseKey is "<alarmPublicID>_<unixMillis>", unique so a duplicated
// dispatch cannot double-append. Rows are never updated or deleted.
type Response struct {
	BaseModel
	ResponseKey  string    `gorm:"uniqueIndex;type:varchar(40);not null" json:"response_key"`
	AlarmID      int64     `gorm:"not null;index:idx_responses_alarm" json:"alarm_id"`
	UserID       int64     `gorm:"not null;index:idx_responses_user" json:"user_id"`
	PartnerID    *int64    `json:"partner_id,omitempty"`
	Response     string    `gorm:"type:varchar(16);not null" json:"response"`
	Reason       string    `gorm:"type:varchar(255);not null;default:''" json:"reason"`
	DelayMinutes int       `gorm:"type:smallint;not null;default:0" json:"delay_minutes"`
	RespondedAt  time.Time `gorm:"type:timestamptz;not null" json:"responded_at"`
}

func (Response) TableName() string {
	return "responses"
}
