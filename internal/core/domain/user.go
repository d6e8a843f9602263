package domain

import "time"

// Role is one of the three canonical principal kinds. The "store_owner"
// spelling seen in older clients is not accepted.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleOwner:
		return true
	}
	return false
}

// User models an authenticated principal.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser carries the fields accepted on signup and admin user creation.
type NewUser struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=16,password"`
	Address  string `json:"address"  validate:"required,max=400"`
	Role     Role   `json:"role"     validate:"required,oneof=admin user owner"`
}

// UserSummary is the public projection of a user attached to other views.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the public projection of u.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Claims is the verified payload of an identity token. It is trusted as-is
// for the lifetime of the token; role or name changes are not reflected until
// the user logs in again.
type Claims struct {
	TokenID   string    `json:"jti"`
	UserID    string    `json:"sub"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"exp"`
}
