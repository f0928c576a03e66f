package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Ieum/internal/model"
	"Ieum/internal/model/dto"
	pkgerrors "Ieum/pkg/errors"
)

func TestUpdateSettingsBounds(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{
		LoginID:  "senior1",
		Role:     model.UserRoleSenior,
		FontSize: 18,
	})

	svc := NewUserService(users, zap.NewNop())

	tooSmall := 8
	_, err := svc.UpdateSettings(context.Background(), user.ID, dto.UpdateSettingsRequest{FontSize: &tooSmall})
	assert.ErrorIs(t, err, pkgerrors.ValidationFailed)

	tooBright := 150
	_, err = svc.UpdateSettings(context.Background(), user.ID, dto.UpdateSettingsRequest{Brightness: &tooBright})
	assert.ErrorIs(t, err, pkgerrors.ValidationFailed)

	fontSize := 24
	disabled := false
	snapshot, err := svc.UpdateSettings(context.Background(), user.ID, dto.UpdateSettingsRequest{
		FontSize:             &fontSize,
		NotificationsEnabled: &disabled,
	})
	require.NoError(t, err)
	assert.Equal(t, 24, snapshot.Settings.FontSize)
	assert.False(t, snapshot.Settings.NotificationsEnabled)
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&model.User{LoginID: "senior1", Name: "김영희", Role: model.UserRoleSenior})

	svc := NewUserService(users, zap.NewNop())

	empty := ""
	_, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Name: &empty})
	assert.ErrorIs(t, err, pkgerrors.ValidationFailed)

	name := "김영자"
	snapshot, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "김영자", snapshot.Name)
}
