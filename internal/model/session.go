package model

import (
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
)

// Session is the per-chat form state. It lives as long as the session
// store keeps it; /start replaces it with a fresh one.
type Session struct {
	Record    wizard.Record `json:"record"`
	StartedAt time.Time     `json:"started_at"`
}

func NewSession(now time.Time) Session {
	return Session{Record: wizard.NewRecord(), StartedAt: now}
}
