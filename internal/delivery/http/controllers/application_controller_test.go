package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandexpo/internal/delivery/http/helpers"
	"brandexpo/internal/domain"
)

// fakeApplicationService implements domain.ApplicationService for handler tests.
type fakeApplicationService struct {
	applyErr             error
	applyResult          *domain.Application
	lastApplyEventID     string
	lastApplyUserName    string
	oneClickErr          error
	oneClickResult       *domain.Application
	oneClickCalled       bool
	hasAppliedResult     bool
	hasAppliedErr        error
	listMineResult       []*domain.ApplicationWithEvent
	listMineErr          error
	updateStatusErr      error
	updateStatusResult   *domain.Application
	lastUpdateStatusID   string
	lastUpdateStatusWant string
}

func (f *fakeApplicationService) Apply(ctx context.Context, actor domain.Actor, eventID, userName, userEmail string) (*domain.Application, error) {
	f.lastApplyEventID = eventID
	f.lastApplyUserName = userName
	return f.applyResult, f.applyErr
}

func (f *fakeApplicationService) ApplyWithBrandProfile(ctx context.Context, actor domain.Actor, eventID string) (*domain.Application, error) {
	f.oneClickCalled = true
	f.lastApplyEventID = eventID
	return f.oneClickResult, f.oneClickErr
}

func (f *fakeApplicationService) HasUserApplied(ctx context.Context, userID, eventID string) (bool, error) {
	return f.hasAppliedResult, f.hasAppliedErr
}

func (f *fakeApplicationService) ListMyApplications(ctx context.Context, actor domain.Actor) ([]*domain.ApplicationWithEvent, error) {
	return f.listMineResult, f.listMineErr
}

func (f *fakeApplicationService) ListAllApplications(ctx context.Context, actor domain.Actor, p domain.PaginationParams) ([]*domain.ApplicationWithEvent, int, error) {
	return nil, 0, nil
}

func (f *fakeApplicationService) ListEventApplications(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Application, error) {
	return nil, nil
}

func (f *fakeApplicationService) UpdateApplicationStatus(ctx context.Context, actor domain.Actor, id, status string) (*domain.Application, error) {
	f.lastUpdateStatusID = id
	f.lastUpdateStatusWant = status
	return f.updateStatusResult, f.updateStatusErr
}

func (f *fakeApplicationService) GetApplicationStats(ctx context.Context, actor domain.Actor) (*domain.ApplicationStats, error) {
	return nil, nil
}

func TestApplicationController_Apply(t *testing.T) {
	user := domain.Actor{ID: "user-1", Role: domain.RoleUser}

	t.Run("201 with manual fields", func(t *testing.T) {
		svc := &fakeApplicationService{applyResult: &domain.Application{ID: "app-1", Status: domain.ApplicationStatusPending}}
		c := NewApplicationController(testLogger, svc)

		body, _ := json.Marshal(ApplyRequest{UserName: "Kim", UserEmail: "kim@acme.com"})
		req := withActor(httptest.NewRequest(http.MethodPost, "/events/ev-1/applications", bytes.NewReader(body)), user)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.Apply(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "ev-1", svc.lastApplyEventID)
		assert.Equal(t, "Kim", svc.lastApplyUserName)
		assert.False(t, svc.oneClickCalled)
	})

	t.Run("one-click path uses the brand profile", func(t *testing.T) {
		svc := &fakeApplicationService{oneClickResult: &domain.Application{ID: "app-1", Status: domain.ApplicationStatusPending}}
		c := NewApplicationController(testLogger, svc)

		req := withActor(httptest.NewRequest(http.MethodPost, "/events/ev-1/applications?use_brand_profile=true", nil), user)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.Apply(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, svc.oneClickCalled)
	})

	t.Run("409 on duplicate application", func(t *testing.T) {
		svc := &fakeApplicationService{applyErr: domain.ErrConflict}
		c := NewApplicationController(testLogger, svc)

		body, _ := json.Marshal(ApplyRequest{UserName: "Kim", UserEmail: "kim@acme.com"})
		req := withActor(httptest.NewRequest(http.MethodPost, "/events/ev-1/applications", bytes.NewReader(body)), user)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.Apply(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
	})

	t.Run("404 when the brand profile is missing", func(t *testing.T) {
		svc := &fakeApplicationService{oneClickErr: domain.ErrNotFound}
		c := NewApplicationController(testLogger, svc)

		req := withActor(httptest.NewRequest(http.MethodPost, "/events/ev-1/applications?use_brand_profile=true", nil), user)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.Apply(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestApplicationController_HasApplied(t *testing.T) {
	svc := &fakeApplicationService{hasAppliedResult: true}
	c := NewApplicationController(testLogger, svc)

	req := withActor(httptest.NewRequest(http.MethodGet, "/events/ev-1/applications/me", nil), domain.Actor{ID: "user-1", Role: domain.RoleUser})
	req.SetPathValue("eventID", "ev-1")
	rec := httptest.NewRecorder()
	c.HasApplied(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["applied"])
}

func TestApplicationController_UpdateApplicationStatus(t *testing.T) {
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	t.Run("200 on approve", func(t *testing.T) {
		svc := &fakeApplicationService{updateStatusResult: &domain.Application{ID: "app-1", Status: domain.ApplicationStatusApproved}}
		c := NewApplicationController(testLogger, svc)

		body := []byte(`{"status":"approved"}`)
		req := withActor(httptest.NewRequest(http.MethodPatch, "/admin/applications/app-1/status", bytes.NewReader(body)), admin)
		req.SetPathValue("applicationID", "app-1")
		rec := httptest.NewRecorder()
		c.UpdateApplicationStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "app-1", svc.lastUpdateStatusID)
		assert.Equal(t, "approved", svc.lastUpdateStatusWant)
	})

	t.Run("409 on invalid transition", func(t *testing.T) {
		svc := &fakeApplicationService{updateStatusErr: domain.ErrInvalidTransition}
		c := NewApplicationController(testLogger, svc)

		body := []byte(`{"status":"approved"}`)
		req := withActor(httptest.NewRequest(http.MethodPatch, "/admin/applications/app-1/status", bytes.NewReader(body)), admin)
		req.SetPathValue("applicationID", "app-1")
		rec := httptest.NewRecorder()
		c.UpdateApplicationStatus(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("400 when status missing", func(t *testing.T) {
		c := NewApplicationController(testLogger, &fakeApplicationService{})

		req := withActor(httptest.NewRequest(http.MethodPatch, "/admin/applications/app-1/status", bytes.NewReader([]byte(`{}`))), admin)
		req.SetPathValue("applicationID", "app-1")
		rec := httptest.NewRecorder()
		c.UpdateApplicationStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
