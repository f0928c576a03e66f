package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"Ieum/internal/handler"
	"Ieum/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())

	v1 := h.Group("/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.POST("/token/refresh", handler.RefreshToken)
		auth.GET("/session", handler.GetSession)
	}

	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		users.GET("/me", handler.GetUserProfile)
		users.PATCH("/me", handler.UpdateUserProfile)
		users.PUT("/me/settings", handler.UpdateUserSettings)
		users.PUT("/me/push-token", handler.UpdatePushToken)
	}

	alarms := v1.Group("/alarms")
	alarms.Use(middleware.AuthMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		alarms.GET("", handler.ListAlarms)
		alarms.GET("/partitioned", handler.GetAlarmsPartitioned)
		alarms.POST("", handler.CreateAlarm)
		alarms.PATCH("/:alarm_id", handler.UpdateAlarm)
		alarms.DELETE("/:alarm_id", handler.DeleteAlarm)
		alarms.GET("/:alarm_id/responses", handler.ListAlarmResponses)
	}

	schedules := v1.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		schedules.GET("/days/:date", handler.GetScheduleDay)
		schedules.GET("/days/:date/meeting-times", handler.GetMeetingTimes)
		schedules.DELETE("/days/:date/items/:index", handler.DeleteScheduleItem)
		schedules.POST("/items", handler.AppendScheduleItem)
		schedules.GET("/months/:month", handler.GetScheduleMonth)
	}

	notifications := v1.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		notifications.POST("/response", handler.RespondNotification)
	}

	state := v1.Group("/state")
	state.Use(middleware.AuthMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		state.POST("/check-ins", handler.ShareCheckIn)
		state.GET("/check-ins/latest", handler.GetLatestCheckIn)
		state.POST("/check-ins/:checkin_id/comment", handler.CommentCheckIn)
	}
}
