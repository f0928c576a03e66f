package dto

// CreateAlarmRequest creates a reminder. Days holds Korean weekday
// labels (월..일); an empty set with repeat=false is a one-shot alarm.
type CreateAlarmRequest struct {
	Time   string   `json:"time" binding:"required"`
	Title  string   `json:"title" binding:"required"`
	Detail string   `json:"detail"`
	Repeat bool     `json:"repeat"`
	Days   []string `json:"days"`
}

// UpdateAlarmRequest patches an alarm, nil fields untouched.
type UpdateAlarmRequest struct {
	Time      *string   `json:"time"`
	Title     *string   `json:"title"`
	Detail    *string   `json:"detail"`
	Repeat    *bool     `json:"repeat"`
	Days      *[]string `json:"days"`
	Completed *bool     `json:"completed"`
}

// AlarmData is one alarm as the client sees it.
type AlarmData struct {
	ID        string   `json:"id"`
	Time      string   `json:"time"`
	Title     string   `json:"title"`
	Detail    string   `json:"detail"`
	Repeat    bool     `json:"repeat"`
	Days      []string `json:"days"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"created_at"`
}

// AlarmPartitionData buckets a user's alarms for the home screen:
// today (split into past and upcoming), tomorrow, later.
type AlarmPartitionData struct {
	Today    TodayPartition `json:"today"`
	Tomorrow []AlarmData    `json:"tomorrow"`
	Later    []AlarmData    `json:"later"`
}

// TodayPartition splits today's alarms around the current time.
type TodayPartition struct {
	Past     []AlarmData `json:"past"`
	Upcoming []AlarmData `json:"upcoming"`
}

// ResponseData is one reaction record under an alarm.
type ResponseData struct {
	ID           string `json:"id"`
	AlarmID      string `json:"alarm_id"`
	Response     string `json:"response"`
	Reason       string `json:"reason,omitempty"`
	DelayMinutes int    `json:"delay_minutes,omitempty"`
	RespondedAt  string `json:"responded_at"`
}
