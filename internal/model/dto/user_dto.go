package dto

// UserSnapshot is the profile view returned by auth and profile reads.
type UserSnapshot struct {
	ID           string      `json:"id"`
	LoginID      string      `json:"login_id"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Role         string      `json:"role"`
	Image        string      `json:"image"`
	PartnerID    string      `json:"partner_id,omitempty"`
	PartnerPhone string      `json:"partner_phone,omitempty"`
	Settings     SettingsDTO `json:"settings"`
}

// SettingsDTO is the per-user display and notification settings, shared
// so both devices of a pair render consistently.
type SettingsDTO struct {
	FontSize             int  `json:"font_size"`
	NotificationsEnabled bool `json:"notifications_enabled"`
	Brightness           int  `json:"brightness"`
}

// UpdateProfileRequest patches name and profile image.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// UpdateSettingsRequest patches settings, nil fields untouched.
type UpdateSettingsRequest struct {
	FontSize             *int  `json:"font_size"`
	NotificationsEnabled *bool `json:"notifications_enabled"`
	Brightness           *int  `json:"brightness"`
}

// UpdatePushTokenRequest registers the device's Expo push token.
type UpdatePushTokenRequest struct {
	ExpoPushToken string `json:"expo_push_token" binding:"required"`
}
