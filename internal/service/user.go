package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/internal/model/dto"
	"Ieum/internal/repository"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/storage/database"
)

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = NewUserService(
			repository.NewUserRepository(database.DB()),
			logger.Logger,
		)
	})
	return userService
}

type UserService struct {
	users UserStore
	log   *zap.Logger
}

func NewUserService(users UserStore, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*dto.UserSnapshot, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	snapshot := userSnapshot(user)
	return &snapshot, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.UserSnapshot, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, pkgerrors.ValidationFailed
		}
		updates["name"] = *req.Name
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.Profile(ctx, userID)
}

// UpdateSettings patches the display and notification settings shared
// across the pair's devices.
func (s *UserService) UpdateSettings(ctx context.Context, userID int64, req dto.UpdateSettingsRequest) (*dto.UserSnapshot, error) {
	updates := map[string]interface{}{}
	if req.FontSize != nil {
		if *req.FontSize < 12 || *req.FontSize > 40 {
			return nil, pkgerrors.ValidationFailed
		}
		updates["font_size"] = *req.FontSize
	}
	if req.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *req.NotificationsEnabled
	}
	if req.Brightness != nil {
		if *req.Brightness < 0 || *req.Brightness > 100 {
			return nil, pkgerrors.ValidationFailed
		}
		updates["brightness"] = *req.Brightness
	}

	if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return s.Profile(ctx, userID)
}

func (s *UserService) UpdatePushToken(ctx context.Context, userID int64, pushToken string) error {
	if err := s.users.UpdatePushToken(ctx, userID, pushToken); err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}
