package models

import "time"

// CreditScore is one snapshot in a user's score history
type CreditScore struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}
