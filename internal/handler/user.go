package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Ieum/internal/model/dto"
	"Ieum/internal/service"
	"Ieum/pkg/response"
)

// GetUserProfile returns the caller's profile and settings
// GET /v1/users/me
func GetUserProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	data, err := service.User().Profile(ctx, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// UpdateUserProfile patches name and profile image
// PATCH /v1/users/me
func UpdateUserProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.User().UpdateProfile(ctx, userID, req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// UpdateUserSettings patches the shared display settings
// PUT /v1/users/me/settings
func UpdateUserSettings(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.User().UpdateSettings(ctx, userID, req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// UpdatePushToken registers the device's Expo push token
// PUT /v1/users/me/push-token
func UpdatePushToken(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.UpdatePushTokenRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.User().UpdatePushToken(ctx, userID, req.ExpoPushToken); err != nil {
		respondError(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
