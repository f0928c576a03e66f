package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Ieum/internal/model/dto"
	"Ieum/internal/service"
	"Ieum/pkg/response"
)

// ListAlarms returns the care target's alarms
// GET /v1/alarms
func ListAlarms(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	data, err := service.Alarm().List(ctx, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// GetAlarmsPartitioned buckets alarms for the home screen
// GET /v1/alarms/partitioned
func GetAlarmsPartitioned(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	data, err := service.Alarm().Partitioned(ctx, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// CreateAlarm adds a reminder
// POST /v1/alarms
func CreateAlarm(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreateAlarmRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Alarm().Create(ctx, userID, req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// UpdateAlarm patches a reminder
// PATCH /v1/alarms/:alarm_id
func UpdateAlarm(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdateAlarmRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Alarm().Update(ctx, userID, c.Param("alarm_id"), req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// DeleteAlarm removes a reminder
// DELETE /v1/alarms/:alarm_id
func DeleteAlarm(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	if err := service.Alarm().Delete(ctx, userID, c.Param("alarm_id")); err != nil {
		respondError(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// ListAlarmResponses lists the reaction records under one alarm
// GET /v1/alarms/:alarm_id/responses
func ListAlarmResponses(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	data, err := service.Dispatch().ListAlarmResponses(ctx, userID, c.Param("alarm_id"))
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}
