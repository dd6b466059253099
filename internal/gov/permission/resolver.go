package permission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admingov/internal/gov/model"
	"admingov/internal/gov/util"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrAdminNotFound = errors.New("admin not found")

// Directory is the external actor directory, read-only here.
type Directory interface {
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
}

// OverrideSource reads the current grant/block documents for an admin.
// Expired documents may still be returned; the resolver filters at read time.
type OverrideSource interface {
	FindOverrides(ctx context.Context, adminID, kind string) ([]*model.Override, error)
}

// Resolver computes effective permission sets. Resolution priority is
// DENY > SPECIAL_ALLOW > ROLE_ALLOW: effective = (base ∪ granted) \ blocked.
type Resolver struct {
	dir       Directory
	overrides OverrideSource
	clock     util.Clock
	cache     *expirable.LRU[string, Set]
}

func NewResolver(dir Directory, overrides OverrideSource, clock util.Clock) *Resolver {
	return &Resolver{dir: dir, overrides: overrides, clock: clock}
}

// WithCache enables a TTL cache in front of Resolve. Callers that mutate
// overrides or roles must call Invalidate for the affected admin.
func (r *Resolver) WithCache(size int, ttl time.Duration) *Resolver {
	if size > 0 && ttl > 0 {
		r.cache = expirable.NewLRU[string, Set](size, nil, ttl)
	}
	return r
}

// Invalidate drops the cached set for one admin. It is fired by every
// override write and every approved request that changes capability.
func (r *Resolver) Invalidate(adminID string) {
	if r.cache != nil {
		r.cache.Remove(adminID)
	}
}

// Resolve computes the effective permission set for an admin at this instant.
// Any failure reading the override stores surfaces as an error rather than a
// partial set: an unreadable block must never widen access.
func (r *Resolver) Resolve(ctx context.Context, adminID string) (Set, error) {
	if r.cache != nil {
		if s, ok := r.cache.Get(adminID); ok {
			return s, nil
		}
	}

	admin, err := r.dir.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("resolve permissions: %w", err)
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	effective := BasePermissions(admin.Role)
	now := r.clock.Now()

	grants, err := r.overrides.FindOverrides(ctx, adminID, model.OverrideKindAllow)
	if err != nil {
		return nil, fmt.Errorf("resolve permissions: read grants: %w", err)
	}
	for _, g := range grants {
		if g.Live(now) {
			effective[g.Permission] = struct{}{}
		}
	}

	blocks, err := r.overrides.FindOverrides(ctx, adminID, model.OverrideKindDeny)
	if err != nil {
		return nil, fmt.Errorf("resolve permissions: read blocks: %w", err)
	}
	for _, b := range blocks {
		if b.Live(now) {
			delete(effective, b.Permission)
		}
	}

	if r.cache != nil {
		r.cache.Add(adminID, effective)
	}
	return effective, nil
}

// HasPermission reports whether the admin currently holds code.
func (r *Resolver) HasPermission(ctx context.Context, adminID, code string) (bool, error) {
	s, err := r.Resolve(ctx, adminID)
	if err != nil {
		return false, err
	}
	return s.Has(code), nil
}

// HasAllPermissions reports whether the admin holds every code in codes.
func (r *Resolver) HasAllPermissions(ctx context.Context, adminID string, codes []string) (bool, error) {
	s, err := r.Resolve(ctx, adminID)
	if err != nil {
		return false, err
	}
	return s.HasAll(codes), nil
}

// HasAnyPermission reports whether the admin holds at least one of codes.
func (r *Resolver) HasAnyPermission(ctx context.Context, adminID string, codes []string) (bool, error) {
	s, err := r.Resolve(ctx, adminID)
	if err != nil {
		return false, err
	}
	return s.HasAny(codes), nil
}

// HasPermissionPattern supports trailing-wildcard checks like "users:*".
func (r *Resolver) HasPermissionPattern(ctx context.Context, adminID, pattern string) (bool, error) {
	s, err := r.Resolve(ctx, adminID)
	if err != nil {
		return false, err
	}
	return s.MatchesPattern(pattern), nil
}
