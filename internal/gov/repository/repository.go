package repository

import (
	"context"
	"errors"
	"time"

	"admingov/internal/gov/model"
)

var (
	ErrDuplicate = errors.New("duplicate record")
	// ErrNoPendingRequest is returned when a conditional transition matched
	// no PENDING row: the request is missing or already terminal.
	ErrNoPendingRequest = errors.New("no pending request matched")
)

// AdminRepository is the actor directory view. This core only reads admin
// records directly; mutations happen exclusively inside ApproveRequest.
type AdminRepository interface {
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
}

// OverrideRepository stores temporal permission overrides, one document per
// (admin_id, permission, kind) among live documents.
type OverrideRepository interface {
	FindOverrides(ctx context.Context, adminID, kind string) ([]*model.Override, error)
	GetOverride(ctx context.Context, id string) (*model.Override, error)
	// UpsertOverride creates or refreshes the live override for the
	// (admin_id, permission, kind) key and returns the stored document.
	UpsertOverride(ctx context.Context, o *model.Override) (*model.Override, error)
	SoftDeleteOverride(ctx context.Context, id, deletedBy string, now time.Time) error
}

// RequestRepository stores the polymorphic approval requests. Create
// uniqueness and review races are both decided by the store, never by
// application locks.
type RequestRepository interface {
	// CreateRequest inserts a PENDING request. A live PENDING request for
	// the same (target_id, request_type) yields ErrDuplicate.
	CreateRequest(ctx context.Context, req *model.Request) error
	GetRequest(ctx context.Context, id string) (*model.Request, error)
	FindRequests(ctx context.Context, filter model.RequestFilter) ([]*model.Request, error)
	// RejectRequest conditionally transitions PENDING -> REJECTED and stamps
	// the review fields. ErrNoPendingRequest if the request was not PENDING.
	RejectRequest(ctx context.Context, requestID, reviewedBy, reviewNotes, rejectionReason string, now time.Time) (*model.Request, error)
	// ApproveRequest transitions PENDING -> APPROVED and applies the
	// type-specific target mutation in the same transaction. Either both
	// commit or neither does.
	ApproveRequest(ctx context.Context, requestID, reviewedBy, reviewNotes string, now time.Time) (*model.Request, error)
}

// GovernanceRepository is the full store surface consumed by the service.
type GovernanceRepository interface {
	AdminRepository
	OverrideRepository
	RequestRepository
	EnsureIndexes(ctx context.Context) error
}
