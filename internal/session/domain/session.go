package domain

import "time"

// Session is the server-held record binding a client to a user identity.
// A user may hold any number of concurrent sessions.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Handle is what a successful authentication returns to the transport
// layer: the opaque token to hand to the client plus its expiry.
type Handle struct {
	Token     string
	ExpiresAt time.Time
}
