package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	"Ieum/internal/queue"
	"Ieum/internal/repository"
	pkgerrors "Ieum/pkg/errors"
	"Ieum/pkg/logger"
	"Ieum/pkg/snowflake"
	"Ieum/storage/database"
	"Ieum/storage/objectstore"
)

var (
	stateService *StateService
	stateOnce    sync.Once
)

func State() *StateService {
	stateOnce.Do(func() {
		stateService = NewStateService(
			repository.NewCheckInRepository(database.DB()),
			repository.NewUserRepository(database.DB()),
			objectstore.Default(),
			logger.Logger,
		)
	})
	return stateService
}

// CheckInStore is the persistence surface StateService needs.
type CheckInStore interface {
	Create(ctx context.Context, checkIn *model.StateCheckIn) error
	FindByPublicID(ctx context.Context, publicID int64) (*model.StateCheckIn, error)
	LatestByUser(ctx context.Context, userID int64) (*model.StateCheckIn, error)
	SetComment(ctx context.Context, publicID int64, comment string) error
}

// StateService persists the senior's mood check-ins and pushes them
// across the pair.
type StateService struct {
	checkIns CheckInStore
	users    UserStore
	photos   objectstore.Store
	log      *zap.Logger

	genID       func() (int64, error)
	publishPush func(queue.PushMessage) error
}

func NewStateService(checkIns CheckInStore, users UserStore, photos objectstore.Store, log *zap.Logger) *StateService {
	return &StateService{
		checkIns:    checkIns,
		users:       users,
		photos:      photos,
		log:         log,
		genID:       snowflake.NextID,
		publishPush: queue.PublishPush,
	}
}

// Share uploads the photo, records the check-in and pushes it to the
// guardian. The push is best-effort and never fails the share.
func (s *StateService) Share(ctx context.Context, userID int64, photo io.Reader, size int64, ext, contentType, emotion string) (*dto.CheckInData, error) {
	if emotion == "" {
		return nil, pkgerrors.ValidationFailed
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	photoURL, err := s.photos.Upload(ctx, photo, size, ext, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload check-in photo: %w", err)
	}

	publicID, err := s.genID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate check-in ID: %w", err)
	}

	checkIn := &model.StateCheckIn{
		PublicID: publicID,
		UserID:   user.ID,
		PhotoURL: photoURL,
		Emotion:  emotion,
	}
	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	s.notifyPartner(ctx, user, "고령자의 상태 표현", fmt.Sprintf("%s님이 오늘의 상태를 공유했습니다.", user.Name),
		map[string]interface{}{
			"type":     "stateShared",
			"photoUri": photoURL,
			"emotion":  emotion,
		})

	data := checkInToDTO(checkIn)
	return &data, nil
}

// Latest serves the guardian's view of the partner's newest check-in.
func (s *StateService) Latest(ctx context.Context, userID int64) (*dto.CheckInData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	targetID := user.ID
	if user.Role == model.UserRoleGuardian {
		if user.PartnerID == nil {
			return nil, pkgerrors.PartnerNotLinked
		}
		targetID = *user.PartnerID
	}

	checkIn, err := s.checkIns.LatestByUser(ctx, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.CheckInNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest check-in: %w", err)
	}

	data := checkInToDTO(checkIn)
	return &data, nil
}

// Comment attaches the guardian's comment and pushes it back to the
// senior.
func (s *StateService) Comment(ctx context.Context, userID int64, checkInID string, req dto.CommentCheckInRequest) (*dto.CheckInData, error) {
	publicID, err := strconv.ParseInt(checkInID, 10, 64)
	if err != nil {
		return nil, pkgerrors.CheckInNotFound
	}

	checkIn, err := s.checkIns.FindByPublicID(ctx, publicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.CheckInNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query check-in: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if user.PartnerID == nil || *user.PartnerID != checkIn.UserID {
		return nil, pkgerrors.PartnerNotLinked
	}

	if err := s.checkIns.SetComment(ctx, publicID, req.Comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	now := time.Now()
	checkIn.Comment = req.Comment
	checkIn.CommentedAt = &now

	s.notifyPartner(ctx, user, "보호자의 댓글 도착", req.Comment,
		map[string]interface{}{
			"type":      "checkInComment",
			"checkInId": strconv.FormatInt(checkIn.PublicID, 10),
		})

	data := checkInToDTO(checkIn)
	return &data, nil
}

func (s *StateService) notifyPartner(ctx context.Context, user *model.User, title, body string, data map[string]interface{}) {
	if user.PartnerID == nil {
		return
	}

	partner, err := s.users.FindByID(ctx, *user.PartnerID)
	if err != nil {
		s.log.Warn("Failed to look up partner for push",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return
	}
	if partner.ExpoPushToken == "" || !partner.NotificationsEnabled {
		return
	}

	msg := queue.PushMessage{
		Token:    partner.ExpoPushToken,
		Title:    title,
		Body:     body,
		Data:     data,
		Category: "state",
	}
	if err := s.publishPush(msg); err != nil {
		s.log.Warn("Failed to queue state push",
			zap.Int64("partner_id", partner.ID),
			zap.Error(err),
		)
	}
}

func checkInToDTO(checkIn *model.StateCheckIn) dto.CheckInData {
	data := dto.CheckInData{
		ID:        strconv.FormatInt(checkIn.PublicID, 10),
		PhotoURL:  checkIn.PhotoURL,
		Emotion:   checkIn.Emotion,
		Comment:   checkIn.Comment,
		CreatedAt: checkIn.CreatedAt.Format(time.RFC3339),
	}
	if checkIn.CommentedAt != nil {
		data.CommentedAt = checkIn.CommentedAt.Format(time.RFC3339)
	}
	return data
}
