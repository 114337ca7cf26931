package domain

import "time"

// Screen enumerates the presentable views.
type Screen string

const (
	ScreenQueue   Screen = "queue"
	ScreenDetails Screen = "details"
	ScreenHistory Screen = "history"
	ScreenProfile Screen = "profile"
)

// SessionToken carries metadata of an issued session token.
type SessionToken struct {
	SessionID string
	StaffID   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}
