package session

import "time"

// TokenPair is the bearer credential pair issued by account/login/.
// The refresh token is persisted alongside the access token but no
// refresh flow consumes it yet; the backend remains the source of
// truth for validity via 401 responses.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Profile is the authenticated user as reported by account/me/.
type Profile struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	RoleDisplay string    `json:"role_display,omitempty"`
	DOB         string    `json:"dob,omitempty"`
	Mobile      string    `json:"mobile,omitempty"`
	City        string    `json:"city,omitempty"`
	IsActive    bool      `json:"is_active,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Credentials is the account/login/ request body.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Snapshot is an immutable view of the session state. Loading is true
// only between manager creation and the first Bootstrap resolution.
type Snapshot struct {
	User    *Profile
	Loading bool
}

func (s Snapshot) Authenticated() bool {
	return s.User != nil
}
