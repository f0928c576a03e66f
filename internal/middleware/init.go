package middleware

import (
	"go.uber.org/zap"

	"Ieum/pkg/logger"
)

// Init wires every middleware that needs startup state.
func Init() error {
	if err := initAuthMiddleware(); err != nil {
		logger.Logger.Error("Failed to initialize auth middleware", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
