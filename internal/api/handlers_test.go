package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/calmarendian/calendar-api/internal/config"
	"github.com/calmarendian/calendar-api/internal/database"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testEnv sets up a complete test environment with database, config, and router.
type testEnv struct {
	db     *database.DB
	cfg    *config.Config
	router http.Handler
	apiKey string
}

// setupTest creates a fresh test environment.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	db, err := database.Open(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	apiKey := "chronicle-test-key"
	cfg := &config.Config{
		Port:         8080,
		Env:          config.EnvStaging, // Force auth checks in tests
		DatabasePath: ":memory:",
		APIKey:       apiKey,
		LogLevel:     "error",
		LogFormat:    "text",
		MaxRangeDays: 2458,
	}

	handlers := NewHandlers(db, cfg, logger)
	router := SetupRoutes(handlers, cfg, logger)

	return &testEnv{db: db, cfg: cfg, router: router, apiKey: apiKey}
}

// do runs a request through the full router and returns the recorder.
func (env *testEnv) do(t *testing.T, method, path string, body interface{}, apiKey string) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data field of a response envelope into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *ErrorInfo      `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response envelope: %v (body %s)", err, rec.Body.String())
	}
	if !resp.Success {
		t.Fatalf("response not successful: %+v", resp.Error)
	}
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("unmarshal response data: %v", err)
	}
}

// errorCode extracts the error code of a failed response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response envelope: %v (body %s)", err, rec.Body.String())
	}
	if resp.Error == nil {
		t.Fatalf("expected error in response, got %s", rec.Body.String())
	}
	return resp.Error.Code
}

// =============================================================================
// DATE CONVERSION ENDPOINTS
// =============================================================================

func TestGetDate(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/dates/777-7-07-1%20CE", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got DateRepresentation
	decodeData(t, rec, &got)

	if got.ADR != 1_906_778 {
		t.Errorf("ADR = %d, want 1906778", got.ADR)
	}
	if got.GCN != "02-077-7-07-1" {
		t.Errorf("GCN = %q, want %q", got.GCN, "02-077-7-07-1")
	}
	if got.CSN != "777-7-07-1" {
		t.Errorf("CSN = %q, want %q (CE marker suppressed by default)", got.CSN, "777-7-07-1")
	}
	if got.AbsoluteCycle != 777 || got.Era != "CE" {
		t.Errorf("absolute cycle = %d %s, want 777 CE", got.AbsoluteCycle, got.Era)
	}
	if got.Colloquial != "Monday, Week 7 of Onset 777" {
		t.Errorf("Colloquial = %q", got.Colloquial)
	}
}

func TestGetDate_GCNInput(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/dates/01-001-1-01-1", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got DateRepresentation
	decodeData(t, rec, &got)
	if got.ADR != 1 {
		t.Errorf("ADR = %d, want 1", got.ADR)
	}
}

func TestGetDate_Malformed(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/dates/not-a-date", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_FORMAT" {
		t.Errorf("error code = %q, want INVALID_FORMAT", code)
	}
}

func TestGetDateByADR(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantGCN  string
		wantErr  string
	}{
		{"first day", "/api/v1/dates/adr/1", http.StatusOK, "01-001-1-01-1", ""},
		{"negative", "/api/v1/dates/adr/-1718100", http.StatusOK, "00-001-1-01-1", ""},
		{"out of range", "/api/v1/dates/adr/170092000", http.StatusBadRequest, "", "OUT_OF_RANGE"},
		{"not a number", "/api/v1/dates/adr/tuesday", http.StatusBadRequest, "", "NOT_AN_INTEGER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantErr != "" {
				if code := errorCode(t, rec); code != tt.wantErr {
					t.Errorf("error code = %q, want %q", code, tt.wantErr)
				}
				return
			}
			var got DateRepresentation
			decodeData(t, rec, &got)
			if got.GCN != tt.wantGCN {
				t.Errorf("GCN = %q, want %q", got.GCN, tt.wantGCN)
			}
		})
	}
}

func TestGetDateFromElements(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet,
		"/api/v1/dates/elements?grand_cycle=2&cycle=77&season=7&week=51&day=4", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got DateRepresentation
	decodeData(t, rec, &got)
	if got.Colloquial != "Fest 4 of 777" {
		t.Errorf("Colloquial = %q, want %q", got.Colloquial, "Fest 4 of 777")
	}
	if got.ColloquialLong != "Festival Four of 777" {
		t.Errorf("ColloquialLong = %q, want %q", got.ColloquialLong, "Festival Four of 777")
	}
}

func TestGetDateFromElements_Invalid(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name    string
		query   string
		wantErr string
	}{
		{"missing parameter", "grand_cycle=1&cycle=1&season=1&week=1", "BAD_REQUEST"},
		{"out of domain", "grand_cycle=1&cycle=1&season=8&week=1&day=1", "OUT_OF_RANGE"},
		{"non-numeric", "grand_cycle=one&cycle=1&season=1&week=1&day=1", "NOT_AN_INTEGER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/dates/elements?"+tt.query, nil, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if code := errorCode(t, rec); code != tt.wantErr {
				t.Errorf("error code = %q, want %q", code, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// EVENT ENDPOINTS
// =============================================================================

func TestCreateAndFetchEvent(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodPost, "/api/v1/events/", map[string]interface{}{
		"date":    "777-7-07-1 CE",
		"title":   "Coronation",
		"details": "Crowning of the 40th monarch",
	}, env.apiKey)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var created eventResponse
	decodeData(t, rec, &created)
	if created.ID == 0 {
		t.Error("created event has no ID")
	}
	if created.ADR != 1_906_778 {
		t.Errorf("ADR = %d, want 1906778", created.ADR)
	}
	if created.Date.CSN != "777-7-07-1" {
		t.Errorf("date CSN = %q", created.Date.CSN)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/events/date/02-077-7-07-1", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d (body %s)", rec.Code, rec.Body.String())
	}

	var events []eventResponse
	decodeData(t, rec, &events)
	if len(events) != 1 || events[0].Title != "Coronation" {
		t.Errorf("events = %+v, want single Coronation entry", events)
	}
}

func TestCreateEvent_RequiresAuth(t *testing.T) {
	env := setupTest(t)

	body := map[string]interface{}{"adr": 1, "title": "unauthorized"}

	rec := env.do(t, http.MethodPost, "/api/v1/events/", body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without key = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/events/", body, "wrong-key")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status with wrong key = %d, want 401", rec.Code)
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing title", map[string]interface{}{"adr": 1}},
		{"missing date and adr", map[string]interface{}{"title": "nowhere"}},
		{"bad date", map[string]interface{}{"date": "junk", "title": "x"}},
		{"adr out of range", map[string]interface{}{"adr": 200_000_000, "title": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/events/", tt.body, env.apiKey)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetEventsInRange(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	// Three consecutive days in week 7 of Onset 777.
	for i, adr := range []int{1_906_778, 1_906_779, 1_906_780} {
		if err := env.db.CreateEvent(ctx, &database.Event{ADR: adr, Title: "entry"}); err != nil {
			t.Fatalf("seed event %d: %v", i, err)
		}
	}

	rec := env.do(t, http.MethodGet,
		"/api/v1/events/range?start=777-7-07-1&end=777-7-07-2", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	var events []eventResponse
	decodeData(t, rec, &events)
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestGetEventsInRange_Limits(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name  string
		query string
	}{
		{"missing bounds", "start=777-7-07-1"},
		{"start after end", "start=777-7-07-2&end=777-7-07-1"},
		{"span too large", "start=500-1-01-1&end=502-1-01-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/events/range?"+tt.query, nil, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	event := &database.Event{ADR: 1, Title: "to remove"}
	if err := env.db.CreateEvent(ctx, event); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	rec := env.do(t, http.MethodDelete, "/api/v1/events/1", nil, env.apiKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/events/1", nil, env.apiKey)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
