package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"admingov/internal/gov/model"
	"admingov/internal/gov/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGovernanceService struct {
	mock.Mock
}

func (m *MockGovernanceService) CreateRequest(ctx context.Context, callerID string, req model.CreateRequestReq) (*model.Request, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockGovernanceService) ReviewRequest(ctx context.Context, callerID, requestID string, req model.ReviewRequestReq) (*model.Request, error) {
	args := m.Called(ctx, callerID, requestID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockGovernanceService) GetRequest(ctx context.Context, callerID, requestID string) (*model.Request, error) {
	args := m.Called(ctx, callerID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Request), args.Error(1)
}

func (m *MockGovernanceService) ListRequests(ctx context.Context, callerID string, filter model.RequestFilter) ([]*model.Request, error) {
	args := m.Called(ctx, callerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Request), args.Error(1)
}

func (m *MockGovernanceService) ResolvePermissions(ctx context.Context, adminID string) ([]string, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGovernanceService) CheckPermission(ctx context.Context, req model.CheckPermissionReq) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockGovernanceService) GrantPermission(ctx context.Context, callerID string, req model.GrantPermissionReq) (*model.Override, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Override), args.Error(1)
}

func (m *MockGovernanceService) BlockPermission(ctx context.Context, callerID string, req model.BlockPermissionReq) (*model.Override, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Override), args.Error(1)
}

func (m *MockGovernanceService) RevokeOverride(ctx context.Context, callerID, overrideID string) error {
	args := m.Called(ctx, callerID, overrideID)
	return args.Error(0)
}

func newTestContext(method, path, body, callerID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if callerID != "" {
		req.Header.Set("x-admin-id", callerID)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPostRequest(t *testing.T) {
	t.Run("created request returns 201", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("CreateRequest", mock.Anything, "adm_1", mock.Anything).
			Return(&model.Request{ID: "req_1", Status: model.StatusPending}, nil)

		body := `{"request_type":"DEACTIVATION","target_id":"adm_2","reason":"policy_violation"}`
		c, rec := newTestContext(http.MethodPost, "/api/v1/requests", body, "adm_1")

		err := h.PostRequest(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "req_1")
	})

	t.Run("missing caller header returns 401", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		body := `{"request_type":"DEACTIVATION","target_id":"adm_2","reason":"policy_violation"}`
		c, rec := newTestContext(http.MethodPost, "/api/v1/requests", body, "")

		err := h.PostRequest(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate pending request returns 409 conflict", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("CreateRequest", mock.Anything, "adm_1", mock.Anything).
			Return(nil, service.ErrConflict)

		body := `{"request_type":"DEACTIVATION","target_id":"adm_2","reason":"policy_violation"}`
		c, rec := newTestContext(http.MethodPost, "/api/v1/requests", body, "adm_1")

		err := h.PostRequest(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "conflict")
	})

	t.Run("hierarchy violation returns 403", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("CreateRequest", mock.Anything, "adm_1", mock.Anything).
			Return(nil, service.ErrForbidden)

		body := `{"request_type":"DEACTIVATION","target_id":"adm_2","reason":"policy_violation"}`
		c, rec := newTestContext(http.MethodPost, "/api/v1/requests", body, "adm_1")

		err := h.PostRequest(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		c, rec := newTestContext(http.MethodPost, "/api/v1/requests", `{not json`, "adm_1")

		err := h.PostRequest(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostRequestReview(t *testing.T) {
	t.Run("approved review returns 200", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("ReviewRequest", mock.Anything, "adm_boss", "req_1", mock.Anything).
			Return(&model.Request{ID: "req_1", Status: model.StatusApproved}, nil)

		c, rec := newTestContext(http.MethodPost, "/api/v1/requests/req_1/review", `{"decision":"APPROVE"}`, "adm_boss")
		c.SetParamNames("id")
		c.SetParamValues("req_1")

		err := h.PostRequestReview(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), model.StatusApproved)
	})

	t.Run("already processed returns 409 already_processed", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("ReviewRequest", mock.Anything, "adm_boss", "req_1", mock.Anything).
			Return(nil, service.ErrAlreadyProcessed)

		c, rec := newTestContext(http.MethodPost, "/api/v1/requests/req_1/review", `{"decision":"APPROVE"}`, "adm_boss")
		c.SetParamNames("id")
		c.SetParamValues("req_1")

		err := h.PostRequestReview(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already_processed")
	})

	t.Run("self-approval rejection returns 400", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("ReviewRequest", mock.Anything, "adm_1", "req_1", mock.Anything).
			Return(nil, service.ErrValidation)

		c, rec := newTestContext(http.MethodPost, "/api/v1/requests/req_1/review", `{"decision":"APPROVE"}`, "adm_1")
		c.SetParamNames("id")
		c.SetParamValues("req_1")

		err := h.PostRequestReview(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRequest(t *testing.T) {
	t.Run("unknown request returns 404", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("GetRequest", mock.Anything, "adm_1", "req_missing").
			Return(nil, service.ErrNotFound)

		c, rec := newTestContext(http.MethodGet, "/api/v1/requests/req_missing", "", "adm_1")
		c.SetParamNames("id")
		c.SetParamValues("req_missing")

		err := h.GetRequest(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetRequests(t *testing.T) {
	t.Run("query params map to the filter", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		want := model.RequestFilter{TargetID: "adm_2", Status: model.StatusPending}
		svc.On("ListRequests", mock.Anything, "adm_1", want).
			Return([]*model.Request{{ID: "req_1"}}, nil)

		c, rec := newTestContext(http.MethodGet, "/api/v1/requests?target_id=adm_2&status=PENDING", "", "adm_1")

		err := h.GetRequests(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("ListRequests", mock.Anything, "adm_1", mock.Anything).
			Return(nil, assert.AnError)

		c, rec := newTestContext(http.MethodGet, "/api/v1/requests", "", "adm_1")

		err := h.GetRequests(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetAdminPermissions(t *testing.T) {
	t.Run("resolved permissions are returned sorted", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("ResolvePermissions", mock.Anything, "adm_2").
			Return([]string{"users:block", "users:read"}, nil)

		c, rec := newTestContext(http.MethodGet, "/api/v1/admins/adm_2/permissions", "", "adm_1")
		c.SetParamNames("id")
		c.SetParamValues("adm_2")

		err := h.GetAdminPermissions(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "users:read")
	})

	t.Run("unknown admin returns 404", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("ResolvePermissions", mock.Anything, "ghost").
			Return(nil, service.ErrNotFound)

		c, rec := newTestContext(http.MethodGet, "/api/v1/admins/ghost/permissions", "", "adm_1")
		c.SetParamNames("id")
		c.SetParamValues("ghost")

		err := h.GetAdminPermissions(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPostPermissionsCheck(t *testing.T) {
	t.Run("allowed check returns true", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("CheckPermission", mock.Anything, mock.MatchedBy(func(req model.CheckPermissionReq) bool {
			return req.AdminID == "adm_2" && req.Permission == "users:read"
		})).Return(true, nil)

		c, rec := newTestContext(http.MethodPost, "/api/v1/permissions/check", `{"admin_id":"adm_2","permission":"users:read"}`, "adm_1")

		err := h.PostPermissionsCheck(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"allowed":true`)
	})
}

func TestOverrideEndpoints(t *testing.T) {
	t.Run("grant returns 201 with the override", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("GrantPermission", mock.Anything, "root_1", mock.Anything).
			Return(&model.Override{ID: "ovr_1", AdminID: "adm_1", Kind: model.OverrideKindAllow}, nil)

		body := `{"admin_id":"adm_1","permission":"reports:export","reason":"audit coverage"}`
		c, rec := newTestContext(http.MethodPost, "/api/v1/overrides/grant", body, "root_1")

		err := h.PostOverrideGrant(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "ovr_1")
	})

	t.Run("block without authority returns 403", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("BlockPermission", mock.Anything, "adm_1", mock.Anything).
			Return(nil, service.ErrForbidden)

		body := `{"admin_id":"adm_2","permission":"users:block","reason":"incident"}`
		c, rec := newTestContext(http.MethodPost, "/api/v1/overrides/block", body, "adm_1")

		err := h.PostOverrideBlock(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("revoke returns 200", func(t *testing.T) {
		svc := new(MockGovernanceService)
		h := NewGovernanceHandler(svc)

		svc.On("RevokeOverride", mock.Anything, "root_1", "ovr_1").Return(nil)

		c, rec := newTestContext(http.MethodDelete, "/api/v1/overrides/ovr_1", "", "root_1")
		c.SetParamNames("id")
		c.SetParamValues("ovr_1")

		err := h.DeleteOverride(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", "", "")
	err := HealthCheck(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
