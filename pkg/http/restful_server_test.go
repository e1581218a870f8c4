package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/hub-alert-service/pkg/alerting/mocks"
	_ "liyu1981.xyz/hub-alert-service/pkg/testing"

	"liyu1981.xyz/hub-alert-service/pkg/alerting"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/db"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

func setupTestServer() *RestfulServer {
	return setupTestServerWithLimiter(nil)
}

func setupTestServerWithLimiter(limiter *alerting.RateLimiterStore) *RestfulServer {
	store := db.NewStore(db.GetInstance(db.UseMemorySqliteDialector()))

	rs := &RestfulServer{
		Server:           gin.Default(),
		Engine:           alerting.NewEngine(store, alerting.DefaultThresholds()),
		RateLimiterStore: limiter,
	}

	rs.Setup()

	return rs
}

func doJSON(rs *RestfulServer, method, path string, payload any) *httptest.ResponseRecorder {
	var body []byte
	switch p := payload.(type) {
	case nil:
	case string:
		body = []byte(p)
	default:
		body, _ = json.Marshal(p)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func registerHub(t *testing.T, rs *RestfulServer) string {
	t.Helper()

	hubID := uuid.NewString()
	w := doJSON(rs, http.MethodPut, "/hubs/"+hubID, HubRequest{Name: "Grow Room", OwnerID: uuid.NewString()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return hubID
}

type ingestResponse struct {
	Success        bool               `json:"success"`
	Reading        models.Measurement `json:"reading"`
	AlertTriggered bool               `json:"alert_triggered"`
	AlertCreated   bool               `json:"alert_created"`
	Error          string             `json:"error"`
}

func ingest(t *testing.T, rs *RestfulServer, hubID string, temperature, humidity float64) (int, ingestResponse) {
	t.Helper()

	w := doJSON(rs, http.MethodPost, "/ingest", map[string]any{
		"source_id":   hubID,
		"temperature": temperature,
		"humidity":    humidity,
	})

	var resp ingestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestPostIngestAndGetAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := registerHub(t, rs)

	code, resp := ingest(t, rs, hubID, 25.0, 50.0)
	require.Equal(t, http.StatusOK, code, resp.Error)
	assert.True(t, resp.Success)
	assert.True(t, resp.AlertTriggered)
	assert.True(t, resp.AlertCreated)
	assert.Equal(t, hubID, resp.Reading.HubID)
	assert.Equal(t, 25.0, resp.Reading.Temperature)
	assert.NotZero(t, resp.Reading.ID)

	alertW := doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts", nil)
	assert.Equal(t, http.StatusOK, alertW.Code)

	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(alertW.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindTemperature, alerts[0].Kind)
	assert.Contains(t, alerts[0].Message, "24")
}

func TestPostIngest_Deduplicates(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := registerHub(t, rs)

	_, first := ingest(t, rs, hubID, 25.0, 50.0)
	assert.True(t, first.AlertCreated)

	code, second := ingest(t, rs, hubID, 25.0, 50.0)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, second.AlertTriggered)
	assert.False(t, second.AlertCreated)

	alertW := doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts", nil)
	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(alertW.Body.Bytes(), &alerts))
	assert.Len(t, alerts, 1)

	readingW := doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/readings", nil)
	require.Equal(t, http.StatusOK, readingW.Code)
	var readings []models.Measurement
	require.NoError(t, json.Unmarshal(readingW.Body.Bytes(), &readings))
	assert.Len(t, readings, 2)
}

func TestPostIngest_NoBreach(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := registerHub(t, rs)

	code, resp := ingest(t, rs, hubID, 20.0, 50.0)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.False(t, resp.AlertTriggered)
	assert.False(t, resp.AlertCreated)

	alertW := doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts", nil)
	assert.JSONEq(t, `[]`, alertW.Body.String())
}

func TestPostIngest_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := registerHub(t, rs)

	cases := map[string]string{
		"empty payload":        `{}`,
		"missing source":       `{"temperature": 25, "humidity": 50}`,
		"blank source":         `{"source_id": "  ", "temperature": 25, "humidity": 50}`,
		"missing humidity":     fmt.Sprintf(`{"source_id": %q, "temperature": 25}`, hubID),
		"non numeric reading":  fmt.Sprintf(`{"source_id": %q, "temperature": "hot", "humidity": 50}`, hubID),
		"malformed json":       `{"source_id": `,
		"unknown source":       fmt.Sprintf(`{"source_id": %q, "temperature": 25, "humidity": 50}`, uuid.NewString()),
		"bad recorded_at time": fmt.Sprintf(`{"source_id": %q, "temperature": 25, "humidity": 50, "recorded_at": "yesterday"}`, hubID),
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			w := doJSON(rs, http.MethodPost, "/ingest", payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.Nil(t, body["success"])
		})
	}

	// nothing was stored for the rejected payloads on the known hub
	readingW := doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/readings", nil)
	assert.JSONEq(t, `[]`, readingW.Body.String())
}

func TestResolveAlert(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := registerHub(t, rs)

	_, resp := ingest(t, rs, hubID, 20.0, 80.0)
	require.True(t, resp.AlertCreated)

	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts?resolved=false", nil).Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)

	w := doJSON(rs, http.MethodPost, fmt.Sprintf("/alerts/%d/resolve", alerts[0].ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resolved models.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	assert.True(t, resolved.Resolved)
	assert.NotNil(t, resolved.ResolvedAt)

	require.NoError(t, json.Unmarshal(doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts?resolved=false", nil).Body.Bytes(), &alerts))
	assert.Len(t, alerts, 0)

	// after resolution the next breach opens a new alert
	_, resp = ingest(t, rs, hubID, 20.0, 80.0)
	assert.True(t, resp.AlertCreated)

	assert.Equal(t, http.StatusNotFound, doJSON(rs, http.MethodPost, "/alerts/999999999/resolve", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(rs, http.MethodPost, "/alerts/abc/resolve", nil).Code)
}

func TestGetAlerts_Filters(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := registerHub(t, rs)

	_, resp := ingest(t, rs, hubID, 25.0, 70.0)
	require.True(t, resp.AlertCreated)

	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts?kind=both", nil).Body.Bytes(), &alerts))
	assert.Len(t, alerts, 1)

	require.NoError(t, json.Unmarshal(doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts?kind=humidity", nil).Body.Bytes(), &alerts))
	assert.Len(t, alerts, 0)

	assert.Equal(t, http.StatusBadRequest, doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts?kind=pressure", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts?limit=-1", nil).Code)
}

func TestGetAlerts_StoreError(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := uuid.NewString()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockStore(ctrl)
	rs.Engine = alerting.NewEngine(mockStore, alerting.DefaultThresholds())
	mockStore.EXPECT().
		ListAlerts(gomock.Any(), gomock.Cond(func(x any) bool { return x.(models.AlertFilter).HubID == hubID })).
		Return(nil, fmt.Errorf("just causing error")).
		Times(1)

	w := doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPostIngest_LookupErrorIsBadRequest(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockStore(ctrl)
	rs.Engine = alerting.NewEngine(mockStore, alerting.DefaultThresholds())
	mockStore.EXPECT().InsertMeasurement(gomock.Any(), gomock.Any()).Return(nil)
	mockStore.EXPECT().FindLatestUnresolvedAlert(gomock.Any(), "hub-1").Return(nil, fmt.Errorf("store unreachable"))

	w := doJSON(rs, http.MethodPost, "/ingest", `{"source_id": "hub-1", "temperature": 30, "humidity": 50}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "store unreachable")
}

func TestPostIngest_BlankSourceNeverReachesStore(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := mocks.NewMockStore(ctrl)
	rs.Engine = alerting.NewEngine(mockStore, alerting.DefaultThresholds())
	mockStore.EXPECT().InsertMeasurement(gomock.Any(), gomock.Any()).Times(0)

	for _, source := range []string{`""`, `"   "`} {
		w := doJSON(rs, http.MethodPost, "/ingest", `{"source_id": `+source+`, "temperature": 30, "humidity": 50}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "source_id is required")
	}
}

func TestPutHub_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	w := doJSON(rs, http.MethodPut, "/hubs/"+uuid.NewString(), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(rs, http.MethodPut, "/hubs/"+uuid.NewString(), `{"name": "Grow Room"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferences(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	ownerID := uuid.NewString()

	assert.Equal(t, http.StatusNotFound, doJSON(rs, http.MethodGet, "/owners/"+ownerID+"/preferences", nil).Code)

	w := doJSON(rs, http.MethodPut, "/owners/"+ownerID+"/preferences", PreferenceRequest{
		EmailEnabled:    true,
		WhatsAppEnabled: true,
		Email:           "owner@example.com",
		PhoneNumber:     "+15550100",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(rs, http.MethodGet, "/owners/"+ownerID+"/preferences", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pref models.NotificationPreference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pref))
	assert.Equal(t, ownerID, pref.OwnerID)
	assert.True(t, pref.EmailEnabled)
	assert.False(t, pref.SMSEnabled)
	assert.True(t, pref.WhatsAppEnabled)
	assert.Equal(t, "+15550100", pref.PhoneNumber)
}

func TestPostIngestWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(alerting.NewRateLimiterStore(2, 2))
	hubID := registerHub(t, rs)

	// Simulate 3 requests in quick succession, only 2 should be allowed
	for i := range 3 {
		code, _ := ingest(t, rs, hubID, 20.0, 50.0)
		if i < 2 {
			require.Equal(t, http.StatusOK, code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, code, "request %d should be rate limited", i+1)
		}
	}

	w := doJSON(rs, http.MethodPost, "/hubs/"+hubID+"/limiter", LimiterRequest{Rate: 2, Burst: 2})
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	code, _ := ingest(t, rs, hubID, 20.0, 50.0)
	require.Equal(t, http.StatusOK, code, "request after limiter reset should be allowed")
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(alerting.NewRateLimiterStore(2, 2))

	w := doJSON(rs, http.MethodPost, "/hubs/"+uuid.NewString()+"/limiter", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(alerting.NewRateLimiterStore(0, 0))
	hubID := uuid.NewString()

	assert.Equal(t, http.StatusTooManyRequests, doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/readings", nil).Code)

	code, _ := ingest(t, rs, hubID, 25.0, 50.0)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestSetLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer() // default without limiter store
	hubID := uuid.NewString()

	// without limiter store setup limiter should be allowed and just return ok (but no effect)
	w := doJSON(rs, http.MethodPost, "/hubs/"+hubID+"/limiter", LimiterRequest{Rate: 2, Burst: 2})
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	// and request to alerts should return empty alerts instead of too many requests
	w = doJSON(rs, http.MethodGet, "/hubs/"+hubID+"/alerts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	hubID := registerHub(t, rs)
	ingest(t, rs, hubID, 20.0, 50.0)

	w := doJSON(rs, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, "hubalert_http_requests_total"))
	assert.True(t, strings.Contains(body, `hubalert_readings_total{verdict="none"}`))
}
