package repository

import "context"

// AdminRepository checks membership in the admin allow-list.
type AdminRepository interface {
	// IsAdmin reports whether the given email belongs to an admin.
	IsAdmin(ctx context.Context, email string) (bool, error)
}
