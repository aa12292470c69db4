package domain

import "time"

type ID string

// User is created once by registration and never mutated afterwards.
// PasswordHash is the only credential material ever persisted.
type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
