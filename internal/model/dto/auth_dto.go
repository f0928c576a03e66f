package dto

// RegisterRequest is the sign-up payload. PartnerPhone is only meaningful
// for guardians and must resolve to a registered senior.
type RegisterRequest struct {
	LoginID      string `json:"login_id" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Role         string `json:"role" binding:"required"`
	PartnerPhone string `json:"partner_phone"`
	Image        string `json:"image"`
}

// LoginRequest carries the credentials plus the device identity the
// session is keyed by.
type LoginRequest struct {
	LoginID       string `json:"login_id" binding:"required"`
	Password      string `json:"password" binding:"required"`
	DeviceID      string `json:"device_id" binding:"required"`
	ExpoPushToken string `json:"expo_push_token"`
}

// LoginResponseData is the token pair plus the user snapshot.
type LoginResponseData struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserSnapshot `json:"user"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest clears the session of one device.
type LogoutRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// SessionQuery identifies the device whose session is read.
type SessionQuery struct {
	DeviceID string `query:"device_id"`
}

// SessionData is the current-user view served from the session store.
type SessionData struct {
	UserID       string `json:"user_id"`
	LoginID      string `json:"login_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PartnerID    string `json:"partner_id,omitempty"`
	PartnerPhone string `json:"partner_phone,omitempty"`
	LoggedInAt   string `json:"logged_in_at"`
}
