package model

import "time"

// Session is the logged-in snapshot kept in Redis, keyed by device id.
// Reads of the current user hit this only, never the database.
type Session struct {
	UserID       int64     `json:"user_id"`
	LoginID      string    `json:"login_id"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	PartnerID    *int64    `json:"partner_id,omitempty"`
	PartnerPhone string    `json:"partner_phone,omitempty"`
	LoggedInAt   time.Time `json:"logged_in_at"`
}
