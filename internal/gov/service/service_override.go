package service

import (
	"context"
	"errors"
	"time"

	"admingov/internal/gov/model"
	"admingov/internal/gov/permission"
	"admingov/internal/gov/repository"
	"admingov/internal/gov/util"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// GrantPermission writes an allow override directly. This is the
// administrative path used by SUPER_ADMIN tooling; the maker-checker path
// materializes the same document through an approved PERMISSION_GRANT.
func (s *Service) GrantPermission(ctx context.Context, callerID string, req model.GrantPermissionReq) (*model.Override, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}
	return s.writeOverride(ctx, callerID, model.OverrideKindAllow, model.PermPermissionsGrant,
		req.AdminID, req.Permission, req.Reason, req.Notes, req.ExpiresAt)
}

// BlockPermission writes a deny override directly. A live deny suppresses
// the permission regardless of role or grants.
func (s *Service) BlockPermission(ctx context.Context, callerID string, req model.BlockPermissionReq) (*model.Override, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}
	return s.writeOverride(ctx, callerID, model.OverrideKindDeny, model.PermPermissionsBlock,
		req.AdminID, req.Permission, req.Reason, req.Notes, req.ExpiresAt)
}

func (s *Service) writeOverride(ctx context.Context, callerID, kind, requiredPerm, adminID, perm, reason, notes string, expiresAt *time.Time) (*model.Override, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if !permission.IsKnownPermission(perm) {
		return nil, errors.Join(ErrValidation, errors.New("permission is not in the catalog"))
	}
	if adminID == callerID {
		return nil, errors.Join(ErrValidation, errors.New("cannot override own permissions"))
	}

	now := s.Clock.Now()
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, errors.Join(ErrValidation, errors.New("expires_at must be in the future"))
	}

	allowed, err := s.Resolver.HasPermission(ctx, callerID, requiredPerm)
	if err != nil {
		if errors.Is(err, permission.ErrAdminNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	target, err := s.Repo.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}

	stored, err := s.Repo.UpsertOverride(ctx, &model.Override{
		ID:         "ovr_" + uuid.NewString(),
		AdminID:    adminID,
		Kind:       kind,
		Permission: perm,
		Reason:     reason,
		Notes:      notes,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  callerID,
		UpdatedBy:  callerID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.Resolver.Invalidate(adminID)

	kindEvent := EventOverrideGranted
	if kind == model.OverrideKindDeny {
		kindEvent = EventOverrideBlocked
	}
	util.GetLogger().Info("audit: override written",
		"override_id", stored.ID,
		"kind", kind,
		"admin_id", adminID,
		"permission", perm,
		"by", callerID,
	)
	s.emit(Event{Kind: kindEvent, AdminID: adminID, Actor: callerID, At: now})

	return stored, nil
}

// RevokeOverride soft-deletes an override. The document stays for the audit
// trail; resolution stops seeing it immediately.
func (s *Service) RevokeOverride(ctx context.Context, callerID, overrideID string) error {
	if callerID == "" {
		return ErrUnauthorized
	}
	if overrideID == "" {
		return errors.Join(ErrValidation, errors.New("override_id is required"))
	}

	existing, err := s.Repo.GetOverride(ctx, overrideID)
	if err != nil {
		return err
	}
	if existing == nil || existing.DeletedAt != nil {
		return ErrNotFound
	}
	if existing.AdminID == callerID {
		return errors.Join(ErrValidation, errors.New("cannot revoke own override"))
	}

	requiredPerm := model.PermPermissionsGrant
	if existing.Kind == model.OverrideKindDeny {
		requiredPerm = model.PermPermissionsBlock
	}
	allowed, err := s.Resolver.HasPermission(ctx, callerID, requiredPerm)
	if err != nil {
		if errors.Is(err, permission.ErrAdminNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !allowed {
		return ErrForbidden
	}

	now := s.Clock.Now()
	if err := s.Repo.SoftDeleteOverride(ctx, overrideID, callerID, now); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	s.Resolver.Invalidate(existing.AdminID)

	util.GetLogger().Info("audit: override revoked",
		"override_id", overrideID,
		"admin_id", existing.AdminID,
		"by", callerID,
	)
	s.emit(Event{Kind: EventOverrideRevoked, AdminID: existing.AdminID, Actor: callerID, At: now})
	return nil
}
