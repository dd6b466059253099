package service

import (
	"context"
	"errors"

	"admingov/internal/gov/model"
	"admingov/internal/gov/permission"
	"admingov/internal/gov/repository"
	"admingov/internal/gov/util"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict: pending request already exists")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyProcessed = errors.New("request already processed")
)

type GovernanceService interface {
	CreateRequest(ctx context.Context, callerID string, req model.CreateRequestReq) (*model.Request, error)
	ReviewRequest(ctx context.Context, callerID, requestID string, req model.ReviewRequestReq) (*model.Request, error)
	GetRequest(ctx context.Context, callerID, requestID string) (*model.Request, error)
	ListRequests(ctx context.Context, callerID string, filter model.RequestFilter) ([]*model.Request, error)

	ResolvePermissions(ctx context.Context, adminID string) ([]string, error)
	CheckPermission(ctx context.Context, req model.CheckPermissionReq) (bool, error)

	GrantPermission(ctx context.Context, callerID string, req model.GrantPermissionReq) (*model.Override, error)
	BlockPermission(ctx context.Context, callerID string, req model.BlockPermissionReq) (*model.Override, error)
	RevokeOverride(ctx context.Context, callerID, overrideID string) error
}

type Service struct {
	Repo     repository.GovernanceRepository
	Resolver *permission.Resolver
	Clock    util.Clock
	Emitter  Emitter
}

func NewService(repo repository.GovernanceRepository, resolver *permission.Resolver, clock util.Clock, emitter Emitter) *Service {
	if emitter == nil {
		emitter = NewLogEmitter()
	}
	return &Service{Repo: repo, Resolver: resolver, Clock: clock, Emitter: emitter}
}

// ResolvePermissions returns the admin's effective permission set, sorted.
func (s *Service) ResolvePermissions(ctx context.Context, adminID string) ([]string, error) {
	if adminID == "" {
		return nil, ErrUnauthorized
	}
	set, err := s.Resolver.Resolve(ctx, adminID)
	if err != nil {
		if errors.Is(err, permission.ErrAdminNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return set.Sorted(), nil
}

func (s *Service) CheckPermission(ctx context.Context, req model.CheckPermissionReq) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, errors.Join(ErrValidation, err)
	}

	var (
		ok  bool
		err error
	)
	switch {
	case req.Permission != "":
		ok, err = s.Resolver.HasPermission(ctx, req.AdminID, req.Permission)
	case len(req.AnyOf) > 0:
		ok, err = s.Resolver.HasAnyPermission(ctx, req.AdminID, req.AnyOf)
	case len(req.AllOf) > 0:
		ok, err = s.Resolver.HasAllPermissions(ctx, req.AdminID, req.AllOf)
	default:
		ok, err = s.Resolver.HasPermissionPattern(ctx, req.AdminID, req.Pattern)
	}
	if err != nil {
		if errors.Is(err, permission.ErrAdminNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return ok, nil
}

func (s *Service) GetRequest(ctx context.Context, callerID, requestID string) (*model.Request, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	req, err := s.Repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	return req, nil
}

func (s *Service) ListRequests(ctx context.Context, callerID string, filter model.RequestFilter) ([]*model.Request, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	return s.Repo.FindRequests(ctx, filter)
}
