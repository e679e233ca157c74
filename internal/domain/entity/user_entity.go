package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Email and Username are globally unique; PasswordHash holds a bcrypt hash
// and must never be serialized to clients.
//
// UpdatedAt is bumped by every applied write and is the sole version input
// for the resource's concurrency token.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	AvatarURL    string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
