package handler

import (
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type signupRequest struct {
	Name     string `json:"name"     example:"Alexandra Montgomery-Smith"`
	Email    string `json:"email"    example:"alex@example.com"`
	Password string `json:"password" example:"Secret#123"`
	Address  string `json:"address"  example:"221B Baker Street, London"`
	Role     string `json:"role"     example:"user"`
}

func (r signupRequest) toDomain() domain.NewUser {
	return domain.NewUser{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Address:  r.Address,
		Role:     domain.Role(r.Role),
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type storeRequest struct {
	Name    string `json:"name"    example:"Corner Books"`
	Email   string `json:"email"   example:"books@example.com"`
	Address string `json:"address" example:"12 High Street"`
}

func (r storeRequest) toDomain() domain.NewStore {
	return domain.NewStore{Name: r.Name, Email: r.Email, Address: r.Address}
}

type ratingRequest struct {
	Rating int `json:"rating" example:"4"`
}

// --- Response types ---

type userResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type ratingResponse struct {
	Rating *domain.Rating `json:"rating"`
	Result string         `json:"result" example:"created"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
