package domain

import "time"

// Store is a rateable business. OwnerID is empty for stores added by an admin.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStore carries the fields accepted when a store is created.
type NewStore struct {
	Name    string `json:"name"    validate:"required,max=60"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
}
