package service

import (
	"context"
	"time"

	"admingov/internal/gov/model"
	"admingov/internal/gov/permission"

	"github.com/stretchr/testify/mock"
)

// MockGovernanceRepository is a shared mock implementation of
// repository.GovernanceRepository for testing.
type MockGovernanceRepository struct {
	mock.Mock
}

func (m *MockGovernanceRepository) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *MockGovernanceRepository) FindOverrides(ctx context.Context, adminID, kind string) ([]*model.Override, error) {
	args := m.Called(ctx, adminID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Override), args.Error(1)
}

func (m *MockGovernanceRepository) GetOverride(ctx context.Context, id string) (*model.Override, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Override), args.Error(1)
}

func (m *MockGovernanceRepository) UpsertOverride(ctx context.Context, o *model.Override) (*model.Override, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Override), args.Error(1)
}

func (m *MockGovernanceRepository) SoftDeleteOverride(ctx context.Context, id, deletedBy string, now time.Time) error {
	args := m.Called(ctx, id, deletedBy, now)
	return args.Error(0)
}

func (m *MockGovernanceRepository) CreateRequest(ctx context.Context, req *model.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockGovernanceRepository) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockGovernanceRepository) FindRequests(ctx context.Context, filter model.RequestFilter) ([]*model.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Request), args.Error(1)
}

func (m *MockGovernanceRepository) RejectRequest(ctx context.Context, requestID, reviewedBy, reviewNotes, rejectionReason string, now time.Time) (*model.Request, error) {
	args := m.Called(ctx, requestID, reviewedBy, reviewNotes, rejectionReason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockGovernanceRepository) ApproveRequest(ctx context.Context, requestID, reviewedBy, reviewNotes string, now time.Time) (*model.Request, error) {
	args := m.Called(ctx, requestID, reviewedBy, reviewNotes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockGovernanceRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MockGovernanceRepository) *Service {
	clock := fakeClock{now: testNow}
	resolver := permission.NewResolver(repo, repo, clock)
	return NewService(repo, resolver, clock, NewLogEmitter())
}

func admin(id, role string, active bool) *model.Admin {
	return &model.Admin{ID: id, Role: role, IsActive: active, EntityType: model.EntityTypeUser}
}

// noOverrides wires empty grant/block reads for an admin so resolver-backed
// checks see the role's base set only.
func noOverrides(repo *MockGovernanceRepository, adminID string) {
	repo.On("FindOverrides", mock.Anything, adminID, mock.Anything).Return([]*model.Override{}, nil).Maybe()
}
