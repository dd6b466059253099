// Package hierarchy holds the static role authority table and the gate that
// decides whether one role may act on another. The table is fixed at build
// time; changing it requires a redeploy.
package hierarchy

import "admingov/internal/gov/model"

// roleLevels orders roles by authority. Higher level = more authority.
// Ties are allowed in principle, but two roles at the same level can never
// act on each other.
var roleLevels = map[string]int{
	model.RoleSuperAdmin:    5,
	model.RoleOrgAdmin:      4,
	model.RoleSupportAdmin:  3,
	model.RoleAuditAdmin:    2,
	model.RoleInternalAdmin: 1,
}

// Level returns the authority level for a role, with ok=false for roles
// outside the enumeration.
func Level(role string) (int, bool) {
	l, ok := roleLevels[role]
	return l, ok
}

// IsValidRole reports whether role belongs to the fixed enumeration.
func IsValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}

// CanActOnRole reports whether an actor with actorRole may initiate or review
// actions against a target with targetRole. The comparison is strictly
// greater: peers can never discipline one another. Unknown roles fail closed.
func CanActOnRole(actorRole, targetRole string) bool {
	actorLevel, ok := roleLevels[actorRole]
	if !ok {
		return false
	}
	targetLevel, ok := roleLevels[targetRole]
	if !ok {
		return false
	}
	return actorLevel > targetLevel
}
