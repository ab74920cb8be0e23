package domain

import (
	"regexp"
	"time"
)

// Well-known role names. The role set is open (admins may create arbitrary
// roles) but these carry special meaning in authorization decisions.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// roleNamePattern constrains role names: lowercase alphanumerics and
// underscores, 3-20 characters. Names are normalized to lowercase before
// storage and compared exactly afterwards.
var roleNamePattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// ValidRoleName reports whether name is an acceptable role name.
func ValidRoleName(name string) bool {
	return roleNamePattern.MatchString(name)
}

// User is the persisted account record. IDs are opaque strings generated at
// creation, never sequential integers.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Roles        []string  `json:"roles"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is an entry in the role registry. Users reference roles by name.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile is the minimal identity projection the directory exposes to
// request handling: no password hash, but the full role-name list.
type UserProfile struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Active    bool     `json:"active"`
	Roles     []string `json:"roles"`
}

// Principal is the authenticated caller for the duration of one request.
// Derived from the validated token subject plus a directory lookup; never
// persisted.
type Principal struct {
	UserID      string   `json:"user_id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	IsAdmin     bool     `json:"is_admin"`
	IsModerator bool     `json:"is_moderator"`
}

// HasRole reports whether the principal carried the role at authentication
// time. Role gates re-query the directory instead of trusting this snapshot.
func (p Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// NewPrincipal projects a profile into a Principal, deriving the admin and
// moderator flags by exact name comparison.
func NewPrincipal(profile *UserProfile) Principal {
	p := Principal{
		UserID:    profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Roles:     profile.Roles,
	}
	p.IsAdmin = p.HasRole(RoleAdmin)
	p.IsModerator = p.HasRole(RoleModerator)
	return p
}
