package domain

import "time"

// User is a group member who can propose, rate, and mark movies watched.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
