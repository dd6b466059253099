package model

import (
	"strings"
	"time"
)

// CreateRequestReq is the input for creating an approval request of any type.
// Type-specific fields are optional at the struct level; the service enforces
// which ones the discriminator requires.
type CreateRequestReq struct {
	RequestType string `json:"request_type" validate:"required,min=1,max=50"`
	TargetID    string `json:"target_id" validate:"omitempty,max=64"`
	Reason      string `json:"reason" validate:"required,min=1,max=64"`
	Notes       string `json:"notes" validate:"omitempty,max=500"`

	// ROLE_CHANGE
	RequestedRole string `json:"requested_role" validate:"omitempty,max=50"`

	// PERMISSION_GRANT / PERMISSION_REVOKE
	Permission string     `json:"permission" validate:"omitempty,max=100"`
	ExpiresAt  *time.Time `json:"expires_at"`

	// CLIENT_ONBOARDING_*
	OrgName          string `json:"org_name" validate:"omitempty,max=200"`
	OrgSize          string `json:"org_size" validate:"omitempty,max=50"`
	ClientEntityType string `json:"client_entity_type" validate:"omitempty,max=50"`
}

func (r *CreateRequestReq) Validate() error {
	r.RequestType = strings.ToUpper(strings.TrimSpace(r.RequestType))
	r.TargetID = strings.TrimSpace(r.TargetID)
	r.Reason = strings.ToLower(strings.TrimSpace(r.Reason))
	r.RequestedRole = strings.ToUpper(strings.TrimSpace(r.RequestedRole))
	r.Permission = strings.ToLower(strings.TrimSpace(r.Permission))
	r.OrgName = strings.TrimSpace(r.OrgName)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	if !IsKnownRequestType(r.RequestType) {
		return &ErrorDetail{Code: "bad_request", Message: "unknown request type"}
	}
	// Self-service onboarding targets the caller; every other type names a target.
	if !IsSelfServiceType(r.RequestType) && r.TargetID == "" {
		return &ErrorDetail{Code: "bad_request", Message: "target_id is required"}
	}
	return nil
}
