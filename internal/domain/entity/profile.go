package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the contact record mirroring an identity in the external
// auth platform. The ID equals the platform's user id; rows are created
// lazily on first authenticated touch.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
