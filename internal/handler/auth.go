package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Ieum/internal/model/dto"
	"Ieum/internal/service"
	"Ieum/pkg/response"
)

// Register creates an account
// POST /v1/auth/register
func Register(ctx context.Context, c *app.RequestContext) {
	var req dto.RegisterRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Auth().Register(ctx, req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// Login authenticates and opens the device session
// POST /v1/auth/login
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Auth().Login(ctx, req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// RefreshToken exchanges a refresh token for a new pair
// POST /v1/auth/token/refresh
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Auth().Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// GetSession reads the device's session snapshot
// GET /v1/auth/session?device_id=...
func GetSession(ctx context.Context, c *app.RequestContext) {
	deviceID := c.Query("device_id")

	data, err := service.Auth().CurrentUser(ctx, deviceID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// Logout clears the device session
// POST /v1/auth/logout
func Logout(ctx context.Context, c *app.RequestContext) {
	var req dto.LogoutRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Auth().Logout(ctx, req); err != nil {
		respondError(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
