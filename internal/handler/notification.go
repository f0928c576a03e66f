package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Ieum/internal/model/dto"
	"Ieum/internal/service"
	"Ieum/pkg/response"
)

// RespondNotification processes a notification reaction
// POST /v1/notifications/response
func RespondNotification(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.NotificationResponseRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Dispatch().HandleResponse(ctx, userID, req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}
