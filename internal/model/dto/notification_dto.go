package dto

// NotificationResponseRequest reports what the user tapped on a
// delivered notification. AlarmID is set for alarm-category responses,
// Reason accompanies snooze actions.
type NotificationResponseRequest struct {
	Category string `json:"category" binding:"required"`
	Action   string `json:"action" binding:"required"`
	AlarmID  string `json:"alarm_id"`
	Reason   string `json:"reason"`
}

// NotificationResponseData acknowledges the dispatch outcome.
type NotificationResponseData struct {
	Handled    bool   `json:"handled"`
	ResponseID string `json:"response_id,omitempty"`
}
