package service

import (
	"context"
	"errors"

	"admingov/internal/gov/hierarchy"
	"admingov/internal/gov/model"
	"admingov/internal/gov/permission"
	"admingov/internal/gov/repository"
	"admingov/internal/gov/util"

	"github.com/google/uuid"
)

// CreateRequest opens a PENDING approval request. Preconditions are checked
// in a fixed order and the first failure wins: discriminator, reason enum,
// type-specific structure, self-action, hierarchy, pending uniqueness.
func (s *Service) CreateRequest(ctx context.Context, callerID string, req model.CreateRequestReq) (*model.Request, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}
	if !model.IsValidReason(req.RequestType, req.Reason) {
		return nil, errors.Join(ErrValidation, errors.New("reason not allowed for request type"))
	}
	if err := s.validateTypeFields(&req); err != nil {
		return nil, err
	}

	requester, err := s.Repo.GetAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrNotFound
	}

	targetID := req.TargetID
	if model.IsSelfServiceType(req.RequestType) {
		// Self-service onboarding: the requester is the subject.
		targetID = callerID
	}
	target, err := s.Repo.GetAdmin(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}

	if !model.IsSelfServiceType(req.RequestType) {
		if callerID == targetID {
			return nil, errors.Join(ErrValidation, errors.New("requester cannot target themselves"))
		}
		if req.RequestType == model.RequestTypeRoleChange && req.RequestedRole == target.Role {
			return nil, errors.Join(ErrValidation, errors.New("requested role equals current role"))
		}
		if !hierarchy.CanActOnRole(requester.Role, target.Role) {
			return nil, ErrForbidden
		}
	}

	now := s.Clock.Now()
	record := &model.Request{
		ID:            "req_" + uuid.NewString(),
		RequestType:   req.RequestType,
		RequestedBy:   callerID,
		RequesterType: requester.Role, // captured now, never re-derived
		TargetID:      targetID,
		TargetType:    target.Role,
		Reason:        req.Reason,
		Notes:         req.Notes,
		Status:        model.StatusPending,
		RequestedRole: req.RequestedRole,
		Permission:    req.Permission,
		ExpiresAt:     req.ExpiresAt,
		OrgName:       req.OrgName,
		OrgSize:       req.OrgSize,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if model.IsOnboardingType(req.RequestType) {
		record.ClientEntityType = req.ClientEntityType
	}
	if req.RequestType == model.RequestTypePermissionRevoke {
		overrideID, err := s.findLiveGrant(ctx, targetID, req.Permission)
		if err != nil {
			return nil, err
		}
		record.OverrideID = overrideID
	}

	if err := s.Repo.CreateRequest(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	util.GetLogger().Info("audit: request created",
		"request_id", record.ID,
		"request_type", record.RequestType,
		"requested_by", callerID,
		"target_id", targetID,
	)
	s.emit(Event{Kind: EventRequestCreated, RequestID: record.ID, AdminID: targetID, Actor: callerID, At: now})

	return record, nil
}

// validateTypeFields enforces the structural rules of each discriminator.
func (s *Service) validateTypeFields(req *model.CreateRequestReq) error {
	switch req.RequestType {
	case model.RequestTypeRoleChange:
		if !hierarchy.IsValidRole(req.RequestedRole) {
			return errors.Join(ErrValidation, errors.New("requested_role is not a known role"))
		}

	case model.RequestTypePermissionGrant:
		if !permission.IsKnownPermission(req.Permission) {
			return errors.Join(ErrValidation, errors.New("permission is not in the catalog"))
		}
		if req.ExpiresAt != nil && !req.ExpiresAt.After(s.Clock.Now()) {
			return errors.Join(ErrValidation, errors.New("expires_at must be in the future"))
		}

	case model.RequestTypePermissionRevoke:
		if !permission.IsKnownPermission(req.Permission) {
			return errors.Join(ErrValidation, errors.New("permission is not in the catalog"))
		}

	case model.RequestTypeClientOnboardingSelf, model.RequestTypeClientOnboardingAdmin:
		if req.OrgName == "" {
			return errors.Join(ErrValidation, errors.New("org_name is required"))
		}
	}
	return nil
}

// findLiveGrant locates the live allow override a PERMISSION_REVOKE request
// points at, so the request carries a one-to-one override back-reference.
func (s *Service) findLiveGrant(ctx context.Context, adminID, perm string) (string, error) {
	grants, err := s.Repo.FindOverrides(ctx, adminID, model.OverrideKindAllow)
	if err != nil {
		return "", err
	}
	now := s.Clock.Now()
	for _, g := range grants {
		if g.Permission == perm && g.Live(now) {
			return g.ID, nil
		}
	}
	return "", errors.Join(ErrValidation, errors.New("no live grant for that permission"))
}
