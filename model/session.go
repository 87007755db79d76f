package model

import "time"

// Session records one authenticated device. Sessions expire through a
// TTL index on expires_at; is_active lets a user end one early.
type Session struct {
	SessionID      string    `bson:"session_id" json:"session_id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt      time.Time `bson:"expires_at" json:"expires_at"`
	LastActivityAt time.Time `bson:"last_activity_at" json:"last_activity_at"`
	DeviceInfo     string    `bson:"device_info" json:"device_info"`
	IPAddress      string    `bson:"ip_address" json:"ip_address"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
}

// Remaining reports how long the session has left, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	if remaining := s.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
