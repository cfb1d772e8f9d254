package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/handler"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/service"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func mustUUID() string { return uuid.New().String() }

func toError(v interface{}) error {
	if v == nil {
		return nil
	}
	return v.(error)
}

// ── Mock: IngestService ───────────────────────────────────────────────────────

type MockIngestService struct {
	ctrl *gomock.Controller
	rec  *MockIngestServiceRecorder
}
type MockIngestServiceRecorder struct{ m *MockIngestService }

func NewMockIngestService(ctrl *gomock.Controller) *MockIngestService {
	m := &MockIngestService{ctrl: ctrl}
	m.rec = &MockIngestServiceRecorder{m}
	return m
}
func (m *MockIngestService) EXPECT() *MockIngestServiceRecorder { return m.rec }

func (m *MockIngestService) IngestBatch(ctx context.Context, docs []map[string]any) (*service.IngestResult, error) {
	ret := m.ctrl.Call(m, "IngestBatch", ctx, docs)
	v, _ := ret[0].(*service.IngestResult)
	return v, toError(ret[1])
}
func (r *MockIngestServiceRecorder) IngestBatch(ctx, docs any) *gomock.Call {
	return r.m.ctrl.RecordCall(r.m, "IngestBatch", ctx, docs)
}

// ── Mock: PrivacyService ──────────────────────────────────────────────────────

type MockPrivacyService struct {
	ctrl *gomock.Controller
	rec  *MockPrivacyServiceRecorder
}
type MockPrivacyServiceRecorder struct{ m *MockPrivacyService }

func NewMockPrivacyService(ctrl *gomock.Controller) *MockPrivacyService {
	m := &MockPrivacyService{ctrl: ctrl}
	m.rec = &MockPrivacyServiceRecorder{m}
	return m
}
func (m *MockPrivacyService) EXPECT() *MockPrivacyServiceRecorder { return m.rec }

func (m *MockPrivacyService) OptOut(ctx context.Context, appUUID, anonUserID string) error {
	ret := m.ctrl.Call(m, "OptOut", ctx, appUUID, anonUserID)
	return toError(ret[0])
}
func (r *MockPrivacyServiceRecorder) OptOut(ctx, appUUID, anonUserID any) *gomock.Call {
	return r.m.ctrl.RecordCall(r.m, "OptOut", ctx, appUUID, anonUserID)
}

func (m *MockPrivacyService) DeleteUserData(ctx context.Context, appUUID, anonUserID string, deleteOptOut bool) (*service.DeletionReport, error) {
	ret := m.ctrl.Call(m, "DeleteUserData", ctx, appUUID, anonUserID, deleteOptOut)
	v, _ := ret[0].(*service.DeletionReport)
	return v, toError(ret[1])
}
func (r *MockPrivacyServiceRecorder) DeleteUserData(ctx, appUUID, anonUserID, deleteOptOut any) *gomock.Call {
	return r.m.ctrl.RecordCall(r.m, "DeleteUserData", ctx, appUUID, anonUserID, deleteOptOut)
}

// ══════════════════════════════════════════════════════════════════════════════
// EventsHandler tests
// ══════════════════════════════════════════════════════════════════════════════

func TestEventsHandler_Ingest_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockIngestService(ctrl)
	mockSvc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).Return(&service.IngestResult{
		Accepted: 2,
		Deduped:  1,
		Rejected: []service.RejectedEvent{},
	}, nil)

	body := `[{"event_type":"geo.ping"},{"event_type":"geo.ping"},{"event_type":"geo.ping"}]`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewEventsHandler(mockSvc)
	err := h.Ingest(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, float64(2), resp["accepted"])
	assert.Equal(t, float64(1), resp["deduped"])
}

func TestEventsHandler_Ingest_PreservesLargeNumbers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockIngestService(ctrl)
	mockSvc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, docs []map[string]any) (*service.IngestResult, error) {
			require.Len(t, docs, 1)
			n, ok := docs[0]["payload"].(map[string]any)["account_id"].(json.Number)
			require.True(t, ok, "numbers should arrive as json.Number")
			assert.Equal(t, "9007199254740993", n.String())
			return &service.IngestResult{Accepted: 1, Rejected: []service.RejectedEvent{}}, nil
		})

	body := `[{"event_type":"geo.ping","payload":{"account_id":9007199254740993}}]`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewEventsHandler(mockSvc)
	err := h.Ingest(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventsHandler_Ingest_BodyNotAList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockIngestService(ctrl)

	body := `{"event_type":"geo.ping"}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewEventsHandler(mockSvc)
	err := h.Ingest(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "body must be a non-empty list", resp["error"])
}

func TestEventsHandler_Ingest_EmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockIngestService(ctrl)
	mockSvc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).Return(
		nil,
		fmt.Errorf("%w: body must be a non-empty list", service.ErrInvalidInput),
	)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`[]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewEventsHandler(mockSvc)
	err := h.Ingest(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsHandler_Ingest_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockIngestService(ctrl)
	mockSvc.EXPECT().IngestBatch(gomock.Any(), gomock.Any()).Return(
		nil,
		errors.New("begin tx: connection refused"),
	)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`[{"a":1}]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewEventsHandler(mockSvc)
	err := h.Ingest(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "internal error", resp["error"])
}

// ══════════════════════════════════════════════════════════════════════════════
// PrivacyHandler tests
// ══════════════════════════════════════════════════════════════════════════════

func TestPrivacyHandler_OptOut_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appUUID := mustUUID()
	mockSvc := NewMockPrivacyService(ctrl)
	mockSvc.EXPECT().OptOut(gomock.Any(), appUUID, "user-1").Return(nil)

	body := fmt.Sprintf(`{"app_uuid":%q,"anon_user_id":"user-1"}`, appUUID)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/opt-out", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewPrivacyHandler(mockSvc)
	err := h.OptOut(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "ok", resp["status"])
}

func TestPrivacyHandler_OptOut_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPrivacyService(ctrl)
	mockSvc.EXPECT().OptOut(gomock.Any(), "", "").Return(
		fmt.Errorf("%w: app_uuid and anon_user_id are required", service.ErrInvalidInput),
	)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/opt-out", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewPrivacyHandler(mockSvc)
	err := h.OptOut(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrivacyHandler_DeleteUserData_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appUUID := mustUUID()
	mockSvc := NewMockPrivacyService(ctrl)
	mockSvc.EXPECT().DeleteUserData(gomock.Any(), appUUID, "user-9", true).Return(&service.DeletionReport{
		AppUUID:    appUUID,
		AnonUserID: "user-9",
		Deleted: map[string]int64{
			"raw_events":  12,
			"customer360": 1,
		},
	}, nil)

	body := fmt.Sprintf(`{"app_uuid":%q,"anon_user_id":"user-9","delete_opt_out":true}`, appUUID)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/privacy/delete", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewPrivacyHandler(mockSvc)
	err := h.DeleteUserData(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, appUUID, resp["app_uuid"])

	deleted, ok := resp["deleted"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), deleted["raw_events"])

	notes, ok := resp["notes"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, notes, "broker")
}

func TestPrivacyHandler_DeleteUserData_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockPrivacyService(ctrl)
	mockSvc.EXPECT().DeleteUserData(gomock.Any(), "not-a-uuid", "user-9", false).Return(
		nil,
		fmt.Errorf("%w: app_uuid must be a UUID", service.ErrInvalidInput),
	)

	body := `{"app_uuid":"not-a-uuid","anon_user_id":"user-9"}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/privacy/delete", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler.NewPrivacyHandler(mockSvc)
	err := h.DeleteUserData(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ══════════════════════════════════════════════════════════════════════════════
// Health
// ══════════════════════════════════════════════════════════════════════════════

func TestHealth(t *testing.T) {
	e := echo.New()
	handler.RegisterHealth(e)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "ok", resp["status"])
}
