// Package domain defines token authorization domain models: decoded claims, the
// permissions that guard drink operations and the authorization error taxonomy.
package domain

// Permission names a single authorized action carried in a token's permissions claim.
type Permission string

const (
	// GetDrinksDetailPermission allows listing drinks with full recipes.
	GetDrinksDetailPermission Permission = "get:drinks-detail"

	// PostDrinksPermission allows creating drinks.
	PostDrinksPermission Permission = "post:drinks"

	// PatchDrinksPermission allows updating drinks.
	PatchDrinksPermission Permission = "patch:drinks"

	// DeleteDrinksPermission allows deleting drinks.
	DeleteDrinksPermission Permission = "delete:drinks"
)

// String returns the permission as it appears in the token.
func (p Permission) String() string {
	return string(p)
}
