package model

import (
	"strings"
	"time"
)

// GrantPermissionReq creates or refreshes an allow override for an admin.
type GrantPermissionReq struct {
	AdminID    string     `json:"admin_id" validate:"required,min=1,max=64"`
	Permission string     `json:"permission" validate:"required,min=1,max=100"`
	Reason     string     `json:"reason" validate:"required,min=1,max=200"`
	Notes      string     `json:"notes" validate:"omitempty,max=500"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

func (r *GrantPermissionReq) Validate() error {
	r.AdminID = strings.TrimSpace(r.AdminID)
	r.Permission = strings.ToLower(strings.TrimSpace(r.Permission))
	r.Reason = strings.TrimSpace(r.Reason)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// BlockPermissionReq creates or refreshes a deny override for an admin.
type BlockPermissionReq struct {
	AdminID    string     `json:"admin_id" validate:"required,min=1,max=64"`
	Permission string     `json:"permission" validate:"required,min=1,max=100"`
	Reason     string     `json:"reason" validate:"required,min=1,max=200"`
	Notes      string     `json:"notes" validate:"omitempty,max=500"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

func (r *BlockPermissionReq) Validate() error {
	r.AdminID = strings.TrimSpace(r.AdminID)
	r.Permission = strings.ToLower(strings.TrimSpace(r.Permission))
	r.Reason = strings.TrimSpace(r.Reason)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// CheckPermissionReq asks whether an admin currently holds permissions.
// Exactly one of Permission / AnyOf / AllOf / Pattern should be set.
type CheckPermissionReq struct {
	AdminID    string   `json:"admin_id" validate:"required,min=1,max=64"`
	Permission string   `json:"permission" validate:"omitempty,max=100"`
	AnyOf      []string `json:"any_of" validate:"omitempty,max=50,dive,max=100"`
	AllOf      []string `json:"all_of" validate:"omitempty,max=50,dive,max=100"`
	Pattern    string   `json:"pattern" validate:"omitempty,max=100"`
}

func (r *CheckPermissionReq) Validate() error {
	r.AdminID = strings.TrimSpace(r.AdminID)
	r.Permission = strings.ToLower(strings.TrimSpace(r.Permission))
	r.Pattern = strings.ToLower(strings.TrimSpace(r.Pattern))

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	set := 0
	if r.Permission != "" {
		set++
	}
	if len(r.AnyOf) > 0 {
		set++
	}
	if len(r.AllOf) > 0 {
		set++
	}
	if r.Pattern != "" {
		set++
	}
	if set != 1 {
		return &ErrorDetail{Code: "bad_request", Message: "exactly one of permission, any_of, all_of, pattern is required"}
	}
	return nil
}
