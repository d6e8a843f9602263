package domain

import (
	"errors"
	"strings"
	"testing"
)

func validNewUser() NewUser {
	return NewUser{
		Name:     "Alexandra Montgomery-Smith",
		Email:    "alex@example.com",
		Password: "Secret#123",
		Address:  "221B Baker Street, London",
		Role:     RoleUser,
	}
}

func TestAverage_RoundsToOneDecimal(t *testing.T) {
	ratings := []Rating{{Value: 2}, {Value: 4}, {Value: 4}, {Value: 5}}
	avg := Average(ratings)
	if avg == nil {
		t.Fatal("expected average, got nil")
	}
	if *avg != 3.8 {
		t.Errorf("expected 3.8, got %v", *avg)
	}
}

func TestAverage_EmptyIsNil(t *testing.T) {
	if avg := Average(nil); avg != nil {
		t.Errorf("expected nil for no ratings, got %v", *avg)
	}
}

func TestAverage_SingleRating(t *testing.T) {
	avg := Average([]Rating{{Value: 1}})
	if avg == nil || *avg != 1 {
		t.Errorf("expected 1, got %v", avg)
	}
}

func TestValidRating(t *testing.T) {
	for v := -1; v <= 7; v++ {
		want := v >= 1 && v <= 5
		if got := ValidRating(v); got != want {
			t.Errorf("ValidRating(%d) = %v, want %v", v, got, want)
		}
	}
}

func TestValidate_NewUser_OK(t *testing.T) {
	if err := Validate(validNewUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NewUser_ShortName(t *testing.T) {
	u := validNewUser()
	u.Name = "Too Short"

	err := Validate(u)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "name must be at least 20 characters") {
		t.Errorf("message should name the length constraint, got %q", err.Error())
	}
}

func TestValidate_NewUser_Password(t *testing.T) {
	cases := map[string]string{
		"no uppercase": "secret#123",
		"no special":   "Secret1234",
		"too short":    "Se#1",
		"too long":     "Secret#1234567890",
	}
	for name, pw := range cases {
		u := validNewUser()
		u.Password = pw
		if err := Validate(u); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}

	u := validNewUser()
	u.Password = "Under_score1"
	if err := Validate(u); err != nil {
		t.Errorf("underscore counts as special character, got %v", err)
	}
}

func TestValidate_NewUser_RoleAndEmail(t *testing.T) {
	u := validNewUser()
	u.Role = "store_owner"
	u.Email = "not-an-email"

	err := Validate(u)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Problems) != 2 {
		t.Errorf("expected 2 problems, got %v", ve.Problems)
	}
}

func TestValidate_AddressTooLong(t *testing.T) {
	u := validNewUser()
	u.Address = strings.Repeat("a", 401)
	if err := Validate(u); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{ErrStoreNotFound, ErrNotFound},
		{ErrUserNotFound, ErrNotFound},
		{ErrUserExists, ErrConflict},
		{ErrInvalidCredentials, ErrUnauthenticated},
		{ErrTokenExpired, ErrUnauthenticated},
		{ErrInvalidRating, ErrValidation},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.kind) {
			t.Errorf("%v should be %v", tc.err, tc.kind)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleUser, RoleOwner} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("store_owner").Valid() {
		t.Error("store_owner must not be accepted")
	}
}
