package models

// User represents a registered user account
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Not serialized
	IsOnboarded  bool   `json:"is_onboarded"`
	CreatedAt    string `json:"created_at"`
}
