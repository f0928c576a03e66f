package handler

import (
	"context"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/app"

	"Ieum/internal/model/dto"
	"Ieum/internal/service"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/response"
)

// ShareCheckIn uploads the mood photo and shares the check-in
// POST /v1/state/check-ins (multipart: photo, emotion)
func ShareCheckIn(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		respondError(ctx, c, pkgerrors.ValidationFailed)
		return
	}
	emotion := c.PostForm("emotion")

	file, err := header.Open()
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	defer file.Close()

	data, err := service.State().Share(ctx, userID,
		file,
		header.Size,
		filepath.Ext(header.Filename),
		header.Header.Get("Content-Type"),
		emotion,
	)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// GetLatestCheckIn reads the partner's newest check-in
// GET /v1/state/check-ins/latest
func GetLatestCheckIn(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	data, err := service.State().Latest(ctx, userID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// CommentCheckIn attaches the guardian's comment
// POST /v1/state/check-ins/:checkin_id/comment
func CommentCheckIn(ctx context.Context, c *app.RequestContext) {
	userID, ok := authedUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.CommentCheckInRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.State().Comment(ctx, userID, c.Param("checkin_id"), req)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}
