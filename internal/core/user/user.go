package user

import (
	"time"

	"github.com/taibuivan/maktaba/internal/platform/sec"
)

// User represents a registered account on the platform.
//
// The remote GraphQL service is the source of truth; this struct mirrors the
// remote shape for validation and transport. PasswordHash never leaves the
// server: it is hydrated only on the login lookup path.
type User struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	DisplayName   string       `json:"display_name"`
	Role          sec.UserRole `json:"role"`
	Disabled      bool         `json:"disabled"`
	EmailVerified bool         `json:"email_verified"`
	PasswordHash  string       `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Filter holds the parameters for a paginated user search.
type Filter struct {
	Query string // Case-insensitive substring match on email or display name
}

// Global field names for validation
const (
	FieldID          = "id"
	FieldEmail       = "email"
	FieldDisplayName = "display_name"
	FieldPassword    = "password"
	FieldRole        = "role"
)
