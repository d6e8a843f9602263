package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storerating/rating-api/internal/core/domain"
)

func claimsFor(role domain.Role) *domain.Claims {
	return &domain.Claims{UserID: "u1", Role: role, Name: "someone"}
}

func TestAuthorize_RoleMatrix(t *testing.T) {
	cases := []struct {
		op      Operation
		allowed domain.Role
	}{
		{AdminAddUser, domain.RoleAdmin},
		{AdminAddStore, domain.RoleAdmin},
		{AdminListUsers, domain.RoleAdmin},
		{AdminListStores, domain.RoleAdmin},
		{AdminDashboard, domain.RoleAdmin},
		{AdminRatingEvents, domain.RoleAdmin},
		{OwnerDashboard, domain.RoleOwner},
		{OwnerCreateStore, domain.RoleOwner},
		{OwnerListStores, domain.RoleOwner},
		{UserSubmitRating, domain.RoleUser},
		{UserDashboard, domain.RoleUser},
		{UserMyRating, domain.RoleUser},
	}

	roles := []domain.Role{domain.RoleAdmin, domain.RoleOwner, domain.RoleUser}
	for _, tc := range cases {
		for _, r := range roles {
			err := Authorize(tc.op, claimsFor(r))
			if r == tc.allowed {
				assert.NoError(t, err, "%s as %s", tc.op, r)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden, "%s as %s", tc.op, r)
			}
		}
	}
}

func TestAuthorize_PublicOperations(t *testing.T) {
	for _, op := range []Operation{SignUp, LogIn, ListStores, StoreRatings} {
		assert.True(t, IsPublic(op), op)
		assert.NoError(t, Authorize(op, nil), op)
		assert.NoError(t, Authorize(op, claimsFor(domain.RoleUser)), op)
	}
}

func TestAuthorize_ProtectedWithoutClaims(t *testing.T) {
	for op, rule := range Table {
		if rule.Public {
			continue
		}
		assert.ErrorIs(t, Authorize(op, nil), domain.ErrUnauthenticated, op)
	}
}

func TestAuthorize_UnknownOperationDenied(t *testing.T) {
	assert.ErrorIs(t, Authorize("admin.drop_everything", claimsFor(domain.RoleAdmin)), domain.ErrForbidden)
}

func TestAuthorize_NonCanonicalRoleDenied(t *testing.T) {
	assert.ErrorIs(t, Authorize(OwnerDashboard, claimsFor("store_owner")), domain.ErrForbidden)
}
