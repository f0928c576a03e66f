package queue

// Exchange and routing key names shared by producers and the topology
// declaration in storage/mq.
const (
	ExchangeDelayed      = "scheduler.delayed"
	ExchangeNotification = "notification.topic"

	RouteStatePrompt   = "prompt.state.daily"
	RouteAlarmFollowup = "alarm.followup"

	QueueStatePrompt   = "prompt.state.daily"
	QueueAlarmFollowup = "alarm.followup"
	QueuePush          = "notification.push"
)

// StatePromptMessage asks the worker to deliver the daily "오늘의 기록"
// state-request prompt to one senior at fire time.
type StatePromptMessage struct {
	MessageID    int64  `json:"message_id"`
	UserID       int64  `json:"user_id"`
	Date         string `json:"date"`
	ScheduledAt  string `json:"scheduled_at"`
	DelaySeconds int    `json:"delay_seconds"`
}

// AlarmFollowupMessage re-delivers a snoozed alarm after the fixed
// offset. AlarmID is zero for state-prompt snoozes.
type AlarmFollowupMessage struct {
	MessageID    int64  `json:"message_id"`
	UserID       int64  `json:"user_id"`
	AlarmID      int64  `json:"alarm_id,omitempty"`
	Title        string `json:"title"`
	Reason       string `json:"reason,omitempty"`
	DelaySeconds int    `json:"delay_seconds"`
}

// PushMessage is one Expo push delivery task.
type PushMessage struct {
	Data      map[string]interface{} `json:"data,omitempty"`
	MessageID int64                  `json:"message_id"`
	Token     string                 `json:"token"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Category  string                 `json:"category"`
}
