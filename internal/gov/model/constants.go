package model

// Roles
const (
	RoleSuperAdmin    = "SUPER_ADMIN"
	RoleOrgAdmin      = "ORG_ADMIN"
	RoleSupportAdmin  = "SUPPORT_ADMIN"
	RoleAuditAdmin    = "AUDIT_ADMIN"
	RoleInternalAdmin = "INTERNAL_ADMIN"
)

// Entity classification for admin records. Client onboarding flips user -> client.
const (
	EntityTypeUser   = "user"
	EntityTypeClient = "client"
)

// Request types (discriminator for the polymorphic request collection)
const (
	RequestTypeActivation            = "ACTIVATION"
	RequestTypeDeactivation          = "DEACTIVATION"
	RequestTypeRoleChange            = "ROLE_CHANGE"
	RequestTypePermissionGrant       = "PERMISSION_GRANT"
	RequestTypePermissionRevoke      = "PERMISSION_REVOKE"
	RequestTypeClientOnboardingSelf  = "CLIENT_ONBOARDING_SELF"
	RequestTypeClientOnboardingAdmin = "CLIENT_ONBOARDING_ADMIN"
)

// Request statuses. EXPIRED is written by an external timer, never by this
// service, but it is terminal: a review against it fails as already processed.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusExpired  = "EXPIRED"
)

// Review decisions
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// Override kinds
const (
	OverrideKindAllow = "allow"
	OverrideKindDeny  = "deny"
)

// Permission constants for strict typing
const (
	PermAdminsCreate     = "admins:create"
	PermAdminsRead       = "admins:read"
	PermAdminsUpdate     = "admins:update"
	PermAdminsActivate   = "admins:activate"
	PermAdminsDeactivate = "admins:deactivate"
	PermAdminsChangeRole = "admins:change_role"

	PermRequestsCreate = "requests:create"
	PermRequestsReview = "requests:review"
	PermRequestsRead   = "requests:read"

	PermPermissionsGrant = "permissions:grant"
	PermPermissionsBlock = "permissions:block"
	PermPermissionsRead  = "permissions:read"

	PermUsersRead    = "users:read"
	PermUsersBlock   = "users:block"
	PermUsersUnblock = "users:unblock"

	PermClientsRead    = "clients:read"
	PermClientsConvert = "clients:convert"

	PermReportsRead   = "reports:read"
	PermReportsExport = "reports:export"
)

// RequestReasons maps each request type to its closed reason enum.
var RequestReasons = map[string][]string{
	RequestTypeActivation:   {"rejoining", "suspension_lifted", "created_in_error"},
	RequestTypeDeactivation: {"policy_violation", "left_organization", "security_incident", "inactivity"},
	RequestTypeRoleChange:   {"promotion", "demotion", "restructuring"},
	RequestTypePermissionGrant: {
		"temporary_duty", "coverage", "audit_support", "incident_response",
	},
	RequestTypePermissionRevoke: {
		"temporary_duty", "coverage", "audit_support", "incident_response",
	},
	RequestTypeClientOnboardingSelf:  {"new_client", "migration", "partner_referral"},
	RequestTypeClientOnboardingAdmin: {"new_client", "migration", "partner_referral"},
}

// OnboardingRejectionReasons is the closed enum required when rejecting a
// client onboarding request.
var OnboardingRejectionReasons = []string{
	"incomplete_profile", "duplicate_account", "failed_verification", "unsupported_region",
}

// IsKnownRequestType reports whether t is a supported discriminator value.
func IsKnownRequestType(t string) bool {
	_, ok := RequestReasons[t]
	return ok
}

// IsValidReason reports whether reason belongs to the request type's enum.
func IsValidReason(requestType, reason string) bool {
	for _, r := range RequestReasons[requestType] {
		if r == reason {
			return true
		}
	}
	return false
}

// IsValidRejectionReason reports whether reason is a valid onboarding
// rejection reason.
func IsValidRejectionReason(reason string) bool {
	for _, r := range OnboardingRejectionReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// IsSelfServiceType reports whether the request type is initiated by the
// subject itself. For these types the requester is the implicit target and
// no self-action or hierarchy check applies.
func IsSelfServiceType(requestType string) bool {
	return requestType == RequestTypeClientOnboardingSelf
}

// IsOnboardingType reports whether the request type is a client onboarding
// conversion. These types carry org fields and a rejection reason enum.
func IsOnboardingType(requestType string) bool {
	return requestType == RequestTypeClientOnboardingSelf ||
		requestType == RequestTypeClientOnboardingAdmin
}
