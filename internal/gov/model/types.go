package model

import "time"

// ErrorResponse for consistent error handling
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Error lets Validate() methods return *ErrorDetail directly so handlers can
// surface the structured code/message pair.
func (e *ErrorDetail) Error() string {
	return e.Message
}

// Admin is the directory record for an administrative actor. The directory
// owns creation; this service reads it and mutates it only when applying an
// approved request.
type Admin struct {
	ID           string    `json:"admin_id" bson:"_id"`
	Role         string    `json:"role" bson:"role"`
	SupervisorID string    `json:"supervisor_id,omitempty" bson:"supervisor_id,omitempty"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	EntityType   string    `json:"entity_type" bson:"entity_type"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Override is a temporal permission override, one document per
// (admin_id, permission, kind). kind=allow grants beyond the role's base set,
// kind=deny suppresses a capability regardless of its source.
type Override struct {
	ID         string     `json:"override_id" bson:"_id"`
	AdminID    string     `json:"admin_id" bson:"admin_id"`
	Kind       string     `json:"kind" bson:"kind"`
	Permission string     `json:"permission" bson:"permission"`
	Reason     string     `json:"reason" bson:"reason"`
	Notes      string     `json:"notes,omitempty" bson:"notes,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`

	// Audit Fields
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time `json:"-" bson:"deleted_at,omitempty"`
	CreatedBy string     `json:"created_by" bson:"created_by"`
	UpdatedBy string     `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	DeletedBy string     `json:"-" bson:"deleted_by,omitempty"`
}

// Live reports whether the override contributes to resolution at the given
// instant. Expiry is a read-time filter: an expired document may still exist
// in the store until an external sweep reaps it.
func (o *Override) Live(now time.Time) bool {
	if o.DeletedAt != nil {
		return false
	}
	if o.ExpiresAt == nil {
		return true
	}
	return o.ExpiresAt.After(now)
}

// Request is the polymorphic workflow entity. One collection holds every
// request type, discriminated by request_type; type-specific fields are
// omitempty so each document only carries the shape of its variant.
type Request struct {
	ID          string `json:"request_id" bson:"_id"`
	RequestType string `json:"request_type" bson:"request_type"`

	// Parties. RequesterType and TargetType are the roles captured at
	// creation time and never re-derived afterwards.
	RequestedBy   string `json:"requested_by" bson:"requested_by"`
	RequesterType string `json:"requester_type" bson:"requester_type"`
	TargetID      string `json:"target_id" bson:"target_id"`
	TargetType    string `json:"target_type" bson:"target_type"`

	Reason string `json:"reason" bson:"reason"`
	Notes  string `json:"notes,omitempty" bson:"notes,omitempty"`

	// Workflow state
	Status      string     `json:"status" bson:"status"`
	ReviewedBy  string     `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewNotes string     `json:"review_notes,omitempty" bson:"review_notes,omitempty"`

	// ROLE_CHANGE
	RequestedRole string `json:"requested_role,omitempty" bson:"requested_role,omitempty"`

	// PERMISSION_GRANT / PERMISSION_REVOKE
	Permission string     `json:"permission,omitempty" bson:"permission,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	OverrideID string     `json:"override_id,omitempty" bson:"override_id,omitempty"`

	// CLIENT_ONBOARDING_*
	OrgName          string `json:"org_name,omitempty" bson:"org_name,omitempty"`
	OrgSize          string `json:"org_size,omitempty" bson:"org_size,omitempty"`
	ClientEntityType string `json:"client_entity_type,omitempty" bson:"client_entity_type,omitempty"`
	RejectionReason  string `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type RequestFilter struct {
	TargetID    string
	RequestedBy string
	RequestType string
	Status      string
}
