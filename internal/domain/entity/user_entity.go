package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and must never reach a serializer.
// Accounts are provisioned out-of-band (see cmd/seed); the API only
// authenticates against them.
type User struct {
	ID        int64
	Username  string
	Email     string // optional, only used for login notification emails
	Password  string
	CreatedAt time.Time
}
