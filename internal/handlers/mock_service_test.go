package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"smart_plant/internal/models"
	"smart_plant/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockReadings struct {
	count    int
	err      error
	calls    int
	lastID   string
	lastData service.ReadingInput
}

func (m *mockReadings) Ingest(ctx context.Context, plantID string, in service.ReadingInput) (int, error) {
	m.calls++
	m.lastID = plantID
	m.lastData = in
	return m.count, m.err
}

type mockActuators struct {
	mu     sync.Mutex
	state  models.ActuatorState
	err    error
	calls  int
	lastID string
}

func (m *mockActuators) Resolve(ctx context.Context, plantID string) (models.ActuatorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastID = plantID
	return m.state, m.err
}

func (m *mockActuators) resolveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockOverrides struct {
	submitErr  error
	removeLeft int
	removeErr  error
	lastSubmit service.OverrideParams
	submits    int
	removes    int
}

func (m *mockOverrides) Submit(ctx context.Context, plantID string, p service.OverrideParams) error {
	m.submits++
	m.lastSubmit = p
	return m.submitErr
}

func (m *mockOverrides) Remove(ctx context.Context, plantID string) (int, error) {
	m.removes++
	return m.removeLeft, m.removeErr
}

type mockStatistics struct {
	graphs   []models.Graph
	err      error
	lastDays int
}

func (m *mockStatistics) Aggregate(ctx context.Context, plantID string, days int) ([]models.DailyAverage, error) {
	m.lastDays = days
	return nil, m.err
}

func (m *mockStatistics) Graphs(ctx context.Context, plantID string, days int) ([]models.Graph, error) {
	m.lastDays = days
	return m.graphs, m.err
}

type mockDashboard struct {
	snapshot models.Dashboard
	err      error
}

func (m *mockDashboard) Snapshot(ctx context.Context, plantID string) (models.Dashboard, error) {
	return m.snapshot, m.err
}

type mockTokens struct {
	tokens    []string
	err       error
	lastToken string
}

func (m *mockTokens) Bind(ctx context.Context, plantID, token string) ([]string, error) {
	m.lastToken = token
	return m.tokens, m.err
}

type mockNotifications struct {
	resp       []models.NotificationRecord
	err        error
	lastFilter service.NotificationFilter
}

func (m *mockNotifications) List(ctx context.Context, plantID string, f service.NotificationFilter) ([]models.NotificationRecord, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockPurge struct {
	token      string
	issueErr   error
	parseErr   error
	ticket     models.PurgeTicket
	count      int
	requestErr error
	result     service.PurgeResult
	confirmErr error

	lastKey     string
	lastParsed  string
	lastTicket  string
	lastApprove bool
}

func (m *mockPurge) IssueOperatorToken(operatorKey string) (string, error) {
	m.lastKey = operatorKey
	return m.token, m.issueErr
}

func (m *mockPurge) ParseOperatorToken(accessToken string) error {
	m.lastParsed = accessToken
	return m.parseErr
}

func (m *mockPurge) RequestPurge(ctx context.Context, plantID string) (models.PurgeTicket, int, error) {
	return m.ticket, m.count, m.requestErr
}

func (m *mockPurge) ConfirmPurge(ctx context.Context, ticketID string, approve bool) (service.PurgeResult, error) {
	m.lastTicket = ticketID
	m.lastApprove = approve
	return m.result, m.confirmErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes(nil)
}

func plantHeader(plantID string) http.Header {
	h := http.Header{}
	if plantID != "" {
		h.Set(plantIDHeader, plantID)
	}
	return h
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func doRequest(r http.Handler, method, path, body string, headers ...http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, hdr := range headers {
		for k, vv := range hdr {
			for _, v := range vv {
				req.Header.Add(k, v)
			}
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var out statusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal body %q: %v", w.Body.String(), err)
	}
	return out
}
