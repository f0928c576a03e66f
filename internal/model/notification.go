package model

// Notification categories mirror the client's notification category
// identifiers; unknown categories fall through the dispatcher as no-ops.
type NotificationCategory string

const (
	NotificationCategoryAlarm        NotificationCategory = "alarmCategory"
	NotificationCategoryStateRequest NotificationCategory = "stateRequest"
)

// Actions a user can take on a delivered notification.
type NotificationAction string

const (
	NotificationActionConfirm      NotificationAction = "confirm"
	NotificationActionSnooze       NotificationAction = "snooze"
	NotificationActionConfirmState NotificationAction = "confirmState"
	NotificationActionSnoozeState  NotificationAction = "snoozeState"
)
