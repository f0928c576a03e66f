package handler

import (
	"context"
	goerrors "errors"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"Ieum/internal/middleware"
	"Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/pkg/response"
)

// respondError maps business errors to the envelope and hides anything
// unexpected behind a generic message.
func respondError(ctx context.Context, c *app.RequestContext, err error) {
	var def errors.Definition
	if goerrors.As(err, &def) {
		response.Error(ctx, c, def)
		return
	}

	logger.Logger.Error("Request failed",
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.Error(err),
	)
	response.Error(ctx, c, errors.Definition{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해 주세요.",
	})
}

// authedUserID pulls the JWT identity or aborts with 401.
func authedUserID(ctx context.Context, c *app.RequestContext) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return 0, false
	}
	return userID, true
}
