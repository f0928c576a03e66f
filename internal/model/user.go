package model

// UserRole distinguishes the elderly user from their caregiver.
type UserRole string

const (
	UserRoleSenior   UserRole = "senior"   // 고령자
	UserRoleGuardian UserRole = "guardian" // 보호자
)

// User holds the account, the partner link and per-user app settings.
// PartnerID may lag behind PartnerPhone: linking is lazy and completed
// on a later login when the other side has registered.
type User struct {
	BaseModel
	LoginID       string   `gorm:"uniqueIndex;type:varchar(64);not null" json:"login_id"`
	Name          string   `gorm:"type:varchar(64);not null" json:"name"`
	PasswordHash  string   `gorm:"type:varchar(128);not null" json:"-"`
	Phone         string   `gorm:"uniqueIndex;type:varchar(16);not null" json:"phone"`
	Role          UserRole `gorm:"type:varchar(16);not null;index:idx_users_role" json:"role"`
	Image         string   `gorm:"type:varchar(512);not null;default:''" json:"image"`
	PartnerID     *int64   `gorm:"index:idx_users_partner" json:"partner_id,omitempty"`
	PartnerPhone  string   `gorm:"type:varchar(16);not null;default:''" json:"partner_phone"`
	ExpoPushToken string   `gorm:"type:varchar(128);not null;default:''" json:"-"`

	// settings shared across the pair's devices
	FontSize             int  `gorm:"not null;default:18" json:"font_size"`
	NotificationsEnabled bool `gorm:"not null;default:true" json:"notifications_enabled"`
	Brightness           int  `gorm:"type:smallint;not null;default:80" json:"brightness"`
}

func (User) TableName() string {
	return "users"
}

// IsSenior reports whether this user is on the cared-for side of the pair.
func (u *User) IsSenior() bool {
	return u.Role == UserRoleSenior
}
