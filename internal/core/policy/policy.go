// Package policy holds the single declarative table that decides which roles
// may invoke each operation. Handlers never check roles themselves.
package policy

import (
	"github.com/storerating/rating-api/internal/core/domain"
)

// Operation names a protected or public use case.
type Operation string

const (
	SignUp Operation = "auth.signup"
	LogIn  Operation = "auth.login"

	ListStores   Operation = "public.list_stores"
	StoreRatings Operation = "public.store_ratings"

	AdminAddUser      Operation = "admin.add_user"
	AdminAddStore     Operation = "admin.add_store"
	AdminListUsers    Operation = "admin.list_users"
	AdminListStores   Operation = "admin.list_stores"
	AdminDashboard    Operation = "admin.dashboard"
	AdminRatingEvents Operation = "admin.rating_events"

	OwnerDashboard   Operation = "owner.dashboard"
	OwnerCreateStore Operation = "owner.create_store"
	OwnerListStores  Operation = "owner.list_stores"

	UserSubmitRating Operation = "user.submit_rating"
	UserDashboard    Operation = "user.dashboard"
	UserMyRating     Operation = "user.my_rating"
)

// Rule lists the roles allowed to perform an operation. A nil role set with
// Public=true means no authentication is required.
type Rule struct {
	Public bool
	Roles  []domain.Role
}

func public() Rule                   { return Rule{Public: true} }
func only(roles ...domain.Role) Rule { return Rule{Roles: roles} }

// Table is the authorization policy for the whole API.
var Table = map[Operation]Rule{
	SignUp:       public(),
	LogIn:        public(),
	ListStores:   public(),
	StoreRatings: public(),

	AdminAddUser:      only(domain.RoleAdmin),
	AdminAddStore:     only(domain.RoleAdmin),
	AdminListUsers:    only(domain.RoleAdmin),
	AdminListStores:   only(domain.RoleAdmin),
	AdminDashboard:    only(domain.RoleAdmin),
	AdminRatingEvents: only(domain.RoleAdmin),

	OwnerDashboard:   only(domain.RoleOwner),
	OwnerCreateStore: only(domain.RoleOwner),
	OwnerListStores:  only(domain.RoleOwner),

	UserSubmitRating: only(domain.RoleUser),
	UserDashboard:    only(domain.RoleUser),
	UserMyRating:     only(domain.RoleUser),
}

// IsPublic reports whether op can be called without a token.
func IsPublic(op Operation) bool {
	return Table[op].Public
}

// Authorize returns nil when claims may perform op. Unknown operations are
// denied. Public operations are allowed with or without claims.
func Authorize(op Operation, claims *domain.Claims) error {
	rule, ok := Table[op]
	if !ok {
		return domain.ErrForbidden
	}
	if rule.Public {
		return nil
	}
	if claims == nil {
		return domain.ErrUnauthenticated
	}
	for _, r := range rule.Roles {
		if r == claims.Role {
			return nil
		}
	}
	return domain.ErrForbidden
}
