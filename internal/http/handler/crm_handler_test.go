package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSyncRunner struct {
	summary *domain.SyncSummary
	err     error
	called  bool
}

func (f *fakeSyncRunner) Run(ctx context.Context) (*domain.SyncSummary, error) {
	f.called = true
	return f.summary, f.err
}

type fakeDashboardProvider struct {
	response *domain.DashboardResponse
	err      error
	filter   domain.DashboardFilter
}

func (f *fakeDashboardProvider) GetDashboard(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardResponse, error) {
	f.filter = filter
	return f.response, f.err
}

func emptyDashboard() *domain.DashboardResponse {
	return &domain.DashboardResponse{
		ByCurrency: map[string]domain.CurrencyBreakdown{},
		Deals:      []domain.DealDTO{},
	}
}

func TestCRMHandler_DefaultsToDashboard(t *testing.T) {
	sync := &fakeSyncRunner{}
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(sync, dash, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crm", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sync.called)

	var resp domain.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
}

func TestCRMHandler_SyncAction(t *testing.T) {
	sync := &fakeSyncRunner{summary: &domain.SyncSummary{Success: true, Total: 7, Ticketed: 4, Flown: 3}}
	h := handler.NewCRMHandler(sync, &fakeDashboardProvider{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm?action=sync", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sync.called)

	var summary domain.SyncSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 7, summary.Total)
	assert.True(t, summary.Success)
}

func TestCRMHandler_ActionFromBody(t *testing.T) {
	sync := &fakeSyncRunner{summary: &domain.SyncSummary{Success: true}}
	h := handler.NewCRMHandler(sync, &fakeDashboardProvider{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm", strings.NewReader(`{"action":"sync"}`))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sync.called)
}

func TestCRMHandler_QueryActionWinsOverBody(t *testing.T) {
	sync := &fakeSyncRunner{}
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(sync, dash, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm?action=dashboard", strings.NewReader(`{"action":"sync"}`))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sync.called)
}

func TestCRMHandler_FilterFromQueryAndBody(t *testing.T) {
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(&fakeSyncRunner{}, dash, zap.NewNop())

	body := `{"dateFrom":"2026-02-01","stageFilter":"flown"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm?dateFrom=2026-01-01&dateTo=2026-01-31", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Query values win per field; body fills the gaps
	assert.Equal(t, "2026-01-01", dash.filter.DateFrom)
	assert.Equal(t, "2026-01-31", dash.filter.DateTo)
	assert.Equal(t, "flown", dash.filter.StageFilter)
}

func TestCRMHandler_FilterFromNestedBodyObject(t *testing.T) {
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(&fakeSyncRunner{}, dash, zap.NewNop())

	body := `{"action":"dashboard","filters":{"dateFrom":"2026-01-01","dateTo":"2026-01-31","stageFilter":"ticketed"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-01-01", dash.filter.DateFrom)
	assert.Equal(t, "2026-01-31", dash.filter.DateTo)
	assert.Equal(t, "ticketed", dash.filter.StageFilter)
}

func TestCRMHandler_NestedFiltersWinOverTopLevel(t *testing.T) {
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(&fakeSyncRunner{}, dash, zap.NewNop())

	body := `{"filters":{"stageFilter":"flown"},"stageFilter":"ticketed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "flown", dash.filter.StageFilter)
}

func TestCRMHandler_TimestampFiltersAccepted(t *testing.T) {
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(&fakeSyncRunner{}, dash, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/crm?dateFrom=2026-01-01T00:00:00.000Z&dateTo=2026-01-31T00:00:00.000Z", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-01-01T00:00:00.000Z", dash.filter.DateFrom)
}

func TestCRMHandler_UnknownActionRejected(t *testing.T) {
	h := handler.NewCRMHandler(&fakeSyncRunner{}, &fakeDashboardProvider{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm?action=explode", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Error, "unknown action: explode")
	assert.Contains(t, apiErr.Error, "sync")
	assert.Contains(t, apiErr.Error, "dashboard")
}

func TestCRMHandler_InvalidFilterRejected(t *testing.T) {
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(&fakeSyncRunner{}, dash, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crm?dateFrom=15-01-2026", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Error, "dateFrom")
}

func TestCRMHandler_InvalidStageFilterRejected(t *testing.T) {
	h := handler.NewCRMHandler(&fakeSyncRunner{}, &fakeDashboardProvider{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crm?stageFilter=cancelled", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCRMHandler_SyncFailureReturnsError(t *testing.T) {
	sync := &fakeSyncRunner{err: errors.New("fetch ticketed deals: bitrix api error: status 500")}
	h := handler.NewCRMHandler(sync, &fakeDashboardProvider{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm?action=sync", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Error, "bitrix api error")
}

func TestCRMHandler_DashboardFailureReturnsError(t *testing.T) {
	dash := &fakeDashboardProvider{err: errors.New("failed to load deals: connection refused")}
	h := handler.NewCRMHandler(&fakeSyncRunner{}, dash, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crm", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCRMHandler_GarbageBodyIgnored(t *testing.T) {
	dash := &fakeDashboardProvider{response: emptyDashboard()}
	h := handler.NewCRMHandler(&fakeSyncRunner{}, dash, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	// A bad body falls back to the default action instead of failing
	assert.Equal(t, http.StatusOK, rec.Code)
}
