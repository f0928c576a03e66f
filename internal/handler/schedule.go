package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"Ieum/internal/model/dto"
	"Ieum/internal/service"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/response"
)

// scheduleTarget resolves whose calendar the request addresses: the
// caller's own, or the linked partner's when scope=partner.
func scheduleTarget(ctx context.Context, c *app.RequestContext, userID int64) (int64, error) {
	if c.Query("scope") != "partner" {
		return userID, nil
	}
	return service.Schedule().PartnerID(ctx, userID)
}

// GetScheduleDay reads one day's entries
// GET /v1/schedules/days/:date
func GetScheduleDay(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	targetID, err := scheduleTarget(ctx, c, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	data, err := service.Schedule().Day(ctx, targetID, c.Param("date"))
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// GetScheduleMonth reads a whole month in one call
// GET /v1/schedules/months/:month
func GetScheduleMonth(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	targetID, err := scheduleTarget(ctx, c, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	data, err := service.Schedule().Month(ctx, targetID, c.Param("month"))
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// AppendScheduleItem appends one entry to a day
// POST /v1/schedules/items
func AppendScheduleItem(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.AppendScheduleItemRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	targetID, err := scheduleTarget(ctx, c, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	data, err := service.Schedule().AppendItem(ctx, targetID, req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// DeleteScheduleItem removes the entry at a position
// DELETE /v1/schedules/days/:date/items/:index
func DeleteScheduleItem(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(ctx, c, pkgerrors.ScheduleIndexInvalid)
		return
	}

	targetID, err := scheduleTarget(ctx, c, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	data, err := service.Schedule().DeleteItem(ctx, targetID, c.Param("date"), index)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// GetMeetingTimes intersects both partners' availability for a date
// GET /v1/schedules/days/:date/meeting-times
func GetMeetingTimes(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	data, err := service.Schedule().MeetingTimes(ctx, userID, c.Param("date"))
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}
