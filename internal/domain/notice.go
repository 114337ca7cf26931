package domain

import "time"

// NoticeLevel mirrors toast severities.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is an advisory message for the operator.
type Notice struct {
	Level     NoticeLevel
	Text      string
	TicketID  string
	CreatedAt time.Time
}
