package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/internal/cache"
	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	"Ieum/internal/repository"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/pkg/token"
	"Ieum/storage/database"
	"Ieum/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = NewAuthService(
			repository.NewUserRepository(database.DB()),
			cache.DefaultSessionRepository(),
			logger.Logger,
		)
	})
	return authService
}

// UserStore is the persistence surface the auth and user services need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByLoginID(ctx context.Context, loginID string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	SetPartnerID(ctx context.Context, userID, partnerID int64) error
	UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error
	UpdatePushToken(ctx context.Context, userID int64, token string) error
}

// SessionStore keeps the logged-in snapshot per device.
type SessionStore interface {
	Get(ctx context.Context, deviceID string) (*model.Session, error)
	Set(ctx context.Context, deviceID string, session *model.Session) error
	Clear(ctx context.Context, deviceID string) error
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	log      *zap.Logger

	issueTokens  func(userID string) (access, refresh string, expiresIn int, err error)
	saveRefresh  func(ctx context.Context, userID int64, refreshToken string) error
	dropRefresh  func(ctx context.Context, userID int64) error
	checkRefresh func(ctx context.Context, userID int64, refreshToken string) bool
}

func NewAuthService(users UserStore, sessions SessionStore, log *zap.Logger) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		log:          log,
		issueTokens:  token.GenerateTokenPair,
		saveRefresh:  cache.SetRefreshToken,
		dropRefresh:  cache.DeleteRefreshToken,
		checkRefresh: cache.ValidateRefreshTokenExists,
	}
}

// Register creates an account. A guardian carrying a partner phone must
// match a registered user; when it does, both partner_id fields are
// written reciprocally as two independent updates with no transaction,
// so a failure in between leaves a one-directional link.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserSnapshot, error) {
	if req.LoginID == "" || req.Password == "" || req.Name == "" || req.Phone == "" || req.Role == "" {
		return nil, pkgerrors.ValidationFailed
	}

	role := model.UserRole(req.Role)
	if role != model.UserRoleSenior && role != model.UserRoleGuardian {
		return nil, pkgerrors.ValidationFailed
	}

	if !utils.ValidatePhone(req.Phone) {
		return nil, pkgerrors.InvalidPhone
	}
	if req.PartnerPhone != "" && !utils.ValidatePhone(req.PartnerPhone) {
		return nil, pkgerrors.InvalidPhone
	}

	if _, err := s.users.FindByLoginID(ctx, req.LoginID); err == nil {
		return nil, pkgerrors.IDAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user by login id: %w", err)
	}

	if _, err := s.users.FindByPhone(ctx, req.Phone); err == nil {
		return nil, pkgerrors.PhoneAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user by phone: %w", err)
	}

	var partner *model.User
	if role == model.UserRoleGuardian && req.PartnerPhone != "" {
		found, err := s.users.FindByPhone(ctx, req.PartnerPhone)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.PartnerNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query partner by phone: %w", err)
		}
		partner = found
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		LoginID:      req.LoginID,
		Name:         req.Name,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         role,
		Image:        req.Image,
		PartnerPhone: req.PartnerPhone,
	}
	if partner != nil {
		user.PartnerID = &partner.ID
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if partner != nil {
		if err := s.users.SetPartnerID(ctx, partner.ID, user.ID); err != nil {
			// no rollback of the first write, the link stays one-directional
			s.log.Error("Failed to write reciprocal partner link",
				zap.Int64("user_id", user.ID),
				zap.Int64("partner_id", partner.ID),
				zap.Error(err),
			)
		}
	}

	snapshot := userSnapshot(user)
	return &snapshot, nil
}

// Login authenticates, completes any pending partner link, persists the
// device session and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponseData, error) {
	user, err := s.users.FindByLoginID(ctx, req.LoginID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, pkgerrors.WrongPassword
	}

	s.completeLazyLink(ctx, user)

	if req.ExpoPushToken != "" && req.ExpoPushToken != user.ExpoPushToken {
		if err := s.users.UpdatePushToken(ctx, user.ID, req.ExpoPushToken); err != nil {
			s.log.Warn("Failed to update push token on login",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	session := &model.Session{
		UserID:       user.ID,
		LoginID:      user.LoginID,
		Name:         user.Name,
		Role:         user.Role,
		PartnerID:    user.PartnerID,
		PartnerPhone: user.PartnerPhone,
		LoggedInAt:   time.Now(),
	}
	if err := s.sessions.Set(ctx, req.DeviceID, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	access, refresh, expiresIn, err := s.issueTokens(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	if err := s.saveRefresh(ctx, user.ID, refresh); err != nil {
		s.log.Warn("Failed to store refresh token",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	return &dto.LoginResponseData{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		User:         userSnapshot(user),
	}, nil
}

// completeLazyLink resolves a partner phone recorded before the partner
// had registered. Both sides are written best-effort; either write can
// fail independently and is only logged.
func (s *AuthService) completeLazyLink(ctx context.Context, user *model.User) {
	if user.PartnerID != nil || user.PartnerPhone == "" {
		return
	}

	partner, err := s.users.FindByPhone(ctx, user.PartnerPhone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	if err != nil {
		s.log.Warn("Failed to resolve partner phone on login",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return
	}

	if err := s.users.SetPartnerID(ctx, user.ID, partner.ID); err != nil {
		s.log.Error("Failed to link partner",
			zap.Int64("user_id", user.ID),
			zap.Int64("partner_id", partner.ID),
			zap.Error(err),
		)
		return
	}
	user.PartnerID = &partner.ID

	if partner.PartnerID == nil {
		if err := s.users.SetPartnerID(ctx, partner.ID, user.ID); err != nil {
			s.log.Error("Failed to write reciprocal partner link",
				zap.Int64("user_id", partner.ID),
				zap.Int64("partner_id", user.ID),
				zap.Error(err),
			)
		}
	}
}

// CurrentUser serves the session snapshot only; it never touches the
// database.
func (s *AuthService) CurrentUser(ctx context.Context, deviceID string) (*dto.SessionData, error) {
	if deviceID == "" {
		return nil, pkgerrors.ValidationFailed
	}

	session, err := s.sessions.Get(ctx, deviceID)
	if errors.Is(err, cache.ErrSessionMissing) {
		return nil, pkgerrors.SessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	data := &dto.SessionData{
		UserID:       strconv.FormatInt(session.UserID, 10),
		LoginID:      session.LoginID,
		Name:         session.Name,
		Role:         string(session.Role),
		PartnerPhone: session.PartnerPhone,
		LoggedInAt:   session.LoggedInAt.Format(time.RFC3339),
	}
	if session.PartnerID != nil {
		data.PartnerID = strconv.FormatInt(*session.PartnerID, 10)
	}
	return data, nil
}

// Logout clears the device session and invalidates the refresh token.
func (s *AuthService) Logout(ctx context.Context, req dto.LogoutRequest) error {
	session, err := s.sessions.Get(ctx, req.DeviceID)
	if err == nil {
		if err := s.dropRefresh(ctx, session.UserID); err != nil {
			s.log.Warn("Failed to drop refresh token on logout",
				zap.Int64("user_id", session.UserID),
				zap.Error(err),
			)
		}
	}

	if err := s.sessions.Clear(ctx, req.DeviceID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponseData, error) {
	uid, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	userID, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	if !s.checkRefresh(ctx, userID, refreshToken) {
		return nil, pkgerrors.Unauthorized
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	access, refresh, expiresIn, err := s.issueTokens(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	if err := s.saveRefresh(ctx, userID, refresh); err != nil {
		s.log.Warn("Failed to store refresh token",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return &dto.LoginResponseData{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		User:         userSnapshot(user),
	}, nil
}

func userSnapshot(user *model.User) dto.UserSnapshot {
	snapshot := dto.UserSnapshot{
		ID:           strconv.FormatInt(user.ID, 10),
		LoginID:      user.LoginID,
		Name:         user.Name,
		Phone:        user.Phone,
		Role:         string(user.Role),
		Image:        user.Image,
		PartnerPhone: user.PartnerPhone,
		Settings: dto.SettingsDTO{
			FontSize:             user.FontSize,
			NotificationsEnabled: user.NotificationsEnabled,
			Brightness:           user.Brightness,
		},
	}
	if user.PartnerID != nil {
		snapshot.PartnerID = strconv.FormatInt(*user.PartnerID, 10)
	}
	return snapshot
}
