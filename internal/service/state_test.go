package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	"Ieum/internal/queue"
	pkgerrors "Ieum/pkg/errors"
)

type fakeCheckInStore struct {
	mu       sync.Mutex
	checkIns []model.StateCheckIn
}

func (s *fakeCheckInStore) Create(ctx context.Context, checkIn *model.StateCheckIn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkIns = append(s.checkIns, *checkIn)
	return nil
}

func (s *fakeCheckInStore) FindByPublicID(ctx context.Context, publicID int64) (*model.StateCheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checkIns {
		if s.checkIns[i].PublicID == publicID {
			copied := s.checkIns[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCheckInStore) LatestByUser(ctx context.Context, userID int64) (*model.StateCheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.checkIns) - 1; i >= 0; i-- {
		if s.checkIns[i].UserID == userID {
			copied := s.checkIns[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCheckInStore) SetComment(ctx context.Context, publicID int64, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checkIns {
		if s.checkIns[i].PublicID == publicID {
			s.checkIns[i].Comment = comment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakePhotoStore struct {
	uploads int
}

func (s *fakePhotoStore) Upload(ctx context.Context, reader io.Reader, size int64, ext, contentType string) (string, error) {
	s.uploads++
	return fmt.Sprintf("https://cdn.example.com/checkins/photo-%d%s", s.uploads, ext), nil
}

func (s *fakePhotoStore) Remove(ctx context.Context, objectKey string) error { return nil }

func (s *fakePhotoStore) PublicURL(objectKey string) string { return objectKey }

type stateFixture struct {
	svc      *StateService
	users    *fakeUserStore
	checkIns *fakeCheckInStore
	photos   *fakePhotoStore
	pushes   []queue.PushMessage
}

func newStateFixture() *stateFixture {
	f := &stateFixture{
		users:    newFakeUserStore(),
		checkIns: &fakeCheckInStore{},
		photos:   &fakePhotoStore{},
	}
	f.svc = NewStateService(f.checkIns, f.users, f.photos, zap.NewNop())
	nextID := int64(500)
	f.svc.genID = func() (int64, error) {
		nextID++
		return nextID, nil
	}
	f.svc.publishPush = func(msg queue.PushMessage) error {
		f.pushes = append(f.pushes, msg)
		return nil
	}
	return f
}

func (f *stateFixture) seedPair(t *testing.T) (senior, guardian *model.User) {
	t.Helper()
	senior = f.users.add(&model.User{
		LoginID:              "senior1",
		Name:                 "김영희",
		Role:                 model.UserRoleSenior,
		ExpoPushToken:        "ExponentPushToken[senior]",
		NotificationsEnabled: true,
	})
	guardian = f.users.add(&model.User{
		LoginID:              "guardian1",
		Name:                 "이철수",
		Role:                 model.UserRoleGuardian,
		ExpoPushToken:        "ExponentPushToken[guardian]",
		NotificationsEnabled: true,
		PartnerID:            &senior.ID,
	})
	senior.PartnerID = &guardian.ID
	return senior, guardian
}

func TestShareUploadsAndNotifiesGuardian(t *testing.T) {
	f := newStateFixture()
	senior, guardian := f.seedPair(t)

	data, err := f.svc.Share(context.Background(), senior.ID,
		strings.NewReader("jpeg-bytes"), 10, ".jpg", "image/jpeg", "기쁨")
	require.NoError(t, err)
	assert.Equal(t, "기쁨", data.Emotion)
	assert.Contains(t, data.PhotoURL, ".jpg")
	assert.Equal(t, 1, f.photos.uploads)

	require.Len(t, f.pushes, 1)
	assert.Equal(t, guardian.ExpoPushToken, f.pushes[0].Token)
	assert.Equal(t, "stateShared", f.pushes[0].Data["type"])
}

func TestShareRequiresEmotion(t *testing.T) {
	f := newStateFixture()
	senior, _ := f.seedPair(t)

	_, err := f.svc.Share(context.Background(), senior.ID,
		strings.NewReader("jpeg-bytes"), 10, ".jpg", "image/jpeg", "")
	assert.ErrorIs(t, err, pkgerrors.ValidationFailed)
	assert.Zero(t, f.photos.uploads)
}

func TestLatestResolvesGuardianToPartner(t *testing.T) {
	f := newStateFixture()
	senior, guardian := f.seedPair(t)

	_, err := f.svc.Share(context.Background(), senior.ID,
		strings.NewReader("a"), 1, ".jpg", "image/jpeg", "평온")
	require.NoError(t, err)
	_, err = f.svc.Share(context.Background(), senior.ID,
		strings.NewReader("b"), 1, ".jpg", "image/jpeg", "기쁨")
	require.NoError(t, err)

	data, err := f.svc.Latest(context.Background(), guardian.ID)
	require.NoError(t, err)
	assert.Equal(t, "기쁨", data.Emotion)
}

func TestLatestWithoutCheckIns(t *testing.T) {
	f := newStateFixture()
	_, guardian := f.seedPair(t)

	_, err := f.svc.Latest(context.Background(), guardian.ID)
	assert.ErrorIs(t, err, pkgerrors.CheckInNotFound)
}

func TestCommentRequiresLinkedGuardian(t *testing.T) {
	f := newStateFixture()
	senior, guardian := f.seedPair(t)
	stranger := f.users.add(&model.User{LoginID: "stranger", Role: model.UserRoleGuardian})

	shared, err := f.svc.Share(context.Background(), senior.ID,
		strings.NewReader("a"), 1, ".jpg", "image/jpeg", "평온")
	require.NoError(t, err)

	_, err = f.svc.Comment(context.Background(), stranger.ID, shared.ID, dto.CommentCheckInRequest{Comment: "좋아요"})
	assert.ErrorIs(t, err, pkgerrors.PartnerNotLinked)

	f.pushes = nil
	data, err := f.svc.Comment(context.Background(), guardian.ID, shared.ID, dto.CommentCheckInRequest{Comment: "좋아 보여요"})
	require.NoError(t, err)
	assert.Equal(t, "좋아 보여요", data.Comment)
	assert.NotEmpty(t, data.CommentedAt)

	// the comment push goes back to the senior
	require.Len(t, f.pushes, 1)
	assert.Equal(t, senior.ExpoPushToken, f.pushes[0].Token)
	assert.Equal(t, "checkInComment", f.pushes[0].Data["type"])
}

func TestCommentUnknownCheckIn(t *testing.T) {
	f := newStateFixture()
	_, guardian := f.seedPair(t)

	_, err := f.svc.Comment(context.Background(), guardian.ID, "999", dto.CommentCheckInRequest{Comment: "x"})
	assert.ErrorIs(t, err, pkgerrors.CheckInNotFound)

	_, err = f.svc.Comment(context.Background(), guardian.ID, "not-a-number", dto.CommentCheckInRequest{Comment: "x"})
	assert.ErrorIs(t, err, pkgerrors.CheckInNotFound)
}
