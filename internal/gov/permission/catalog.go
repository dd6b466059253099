// Package permission holds the static permission catalog, the role base
// permission map, and the engine that resolves an admin's effective
// capability set from base permissions plus temporal overrides.
package permission

import (
	"sort"

	"admingov/internal/gov/model"
)

// Catalog is the closed set of permission codes. Anything outside it is
// rejected at validation time, never stored.
var Catalog = map[string]bool{
	model.PermAdminsCreate:     true,
	model.PermAdminsRead:       true,
	model.PermAdminsUpdate:     true,
	model.PermAdminsActivate:   true,
	model.PermAdminsDeactivate: true,
	model.PermAdminsChangeRole: true,
	model.PermRequestsCreate:   true,
	model.PermRequestsReview:   true,
	model.PermRequestsRead:     true,
	model.PermPermissionsGrant: true,
	model.PermPermissionsBlock: true,
	model.PermPermissionsRead:  true,
	model.PermUsersRead:        true,
	model.PermUsersBlock:       true,
	model.PermUsersUnblock:     true,
	model.PermClientsRead:      true,
	model.PermClientsConvert:   true,
	model.PermReportsRead:      true,
	model.PermReportsExport:    true,
}

// RolePermissions maps each role to its base permission set (the ROLE_ALLOW
// layer). INTERNAL_ADMIN deliberately has no entry: the shell role carries no
// default authority and receives every capability via explicit grants.
var RolePermissions = map[string][]string{
	model.RoleSuperAdmin: {
		model.PermAdminsCreate,
		model.PermAdminsRead,
		model.PermAdminsUpdate,
		model.PermAdminsActivate,
		model.PermAdminsDeactivate,
		model.PermAdminsChangeRole,
		model.PermRequestsCreate,
		model.PermRequestsReview,
		model.PermRequestsRead,
		model.PermPermissionsGrant,
		model.PermPermissionsBlock,
		model.PermPermissionsRead,
		model.PermUsersRead,
		model.PermUsersBlock,
		model.PermUsersUnblock,
		model.PermClientsRead,
		model.PermClientsConvert,
		model.PermReportsRead,
		model.PermReportsExport,
	},
	model.RoleOrgAdmin: {
		model.PermAdminsCreate,
		model.PermAdminsRead,
		model.PermAdminsUpdate,
		model.PermAdminsActivate,
		model.PermAdminsDeactivate,
		model.PermAdminsChangeRole,
		model.PermRequestsCreate,
		model.PermRequestsReview,
		model.PermRequestsRead,
		model.PermPermissionsRead,
		model.PermUsersRead,
		model.PermUsersBlock,
		model.PermUsersUnblock,
		model.PermClientsRead,
		model.PermClientsConvert,
		model.PermReportsRead,
	},
	model.RoleSupportAdmin: {
		model.PermAdminsRead,
		model.PermRequestsCreate,
		model.PermRequestsRead,
		model.PermUsersRead,
		model.PermUsersBlock,
		model.PermUsersUnblock,
		model.PermClientsRead,
	},
	model.RoleAuditAdmin: {
		model.PermAdminsRead,
		model.PermRequestsRead,
		model.PermPermissionsRead,
		model.PermUsersRead,
		model.PermClientsRead,
		model.PermReportsRead,
		model.PermReportsExport,
	},
	model.RoleInternalAdmin: {},
}

// IsKnownPermission reports whether code is in the catalog.
func IsKnownPermission(code string) bool {
	return Catalog[code]
}

// BasePermissions returns the role's base set as a fresh Set. Unknown roles
// resolve to an empty set.
func BasePermissions(role string) Set {
	s := make(Set)
	for _, p := range RolePermissions[role] {
		s[p] = struct{}{}
	}
	return s
}

// AllPermissions returns the catalog sorted, for diagnostics and docs.
func AllPermissions() []string {
	out := make([]string, 0, len(Catalog))
	for p := range Catalog {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
