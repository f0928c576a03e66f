package dto

// ScheduleItemDTO is one calendar entry. Entries have no ids; the
// client addresses them by position within the day.
type ScheduleItemDTO struct {
	Time        string `json:"time" binding:"required"`
	Content     string `json:"content" binding:"required"`
	StatusType  string `json:"statusType"`
	StatusValue bool   `json:"statusValue"`
}

// AppendScheduleItemRequest appends one entry to a day.
type AppendScheduleItemRequest struct {
	Date string          `json:"date" binding:"required"`
	Item ScheduleItemDTO `json:"item" binding:"required"`
}

// ScheduleDayData is every entry of one date.
type ScheduleDayData struct {
	Date  string            `json:"date"`
	Items []ScheduleItemDTO `json:"items"`
}

// ScheduleMonthData maps yyyy-mm-dd to the day's entries for one month.
type ScheduleMonthData struct {
	Month string                       `json:"month"`
	Days  map[string][]ScheduleItemDTO `json:"days"`
}

// MeetingTimesData lists the clock strings on which both partners
// marked themselves available for the date.
type MeetingTimesData struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
