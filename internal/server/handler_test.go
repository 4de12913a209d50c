package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resumeparse/internal/config"
	"resumeparse/internal/errors"
	"resumeparse/internal/observability"
)

func newTestServer(t *testing.T, apiKeys []string) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	appCfg := &config.Config{
		Pipeline: config.PipelineConfig{MinWords: 50, NameScanLines: 5},
		Fetch: config.FetchConfig{
			Timeout:         5 * time.Second,
			MaxDownloadSize: 1024 * 1024,
			CircuitBreaker:  config.CircuitBreakerConfig{Enabled: false},
		},
	}

	logger := errors.NewLogger(slog.LevelError)
	srv := NewServer(appCfg, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1024,
	}, logger)

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, appCfg)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}

	return srv, om
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/parse_resume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return resp
}

func TestParseResumeHandlerMissingFileURL(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createParseResumeHandler(om)

	tests := []struct {
		name string
		body string
	}{
		{"empty file_url", `{"file_url": ""}`},
		{"whitespace file_url", `{"file_url": "   "}`},
		{"absent file_url", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(handler, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			resp := decodeEnvelope(t, rec)
			if resp.Status != "error" {
				t.Errorf("envelope status = %q, want error", resp.Status)
			}
			if resp.Message != "Missing 'file_url' in request body" {
				t.Errorf("envelope message = %q", resp.Message)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("envelope status_code = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestParseResumeHandlerRejectsGet(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createParseResumeHandler(om)

	req := httptest.NewRequest(http.MethodGet, "/api/parse_resume", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestParseResumeHandlerRejectsWrongContentType(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createParseResumeHandler(om)

	req := httptest.NewRequest(http.MethodPost, "/api/parse_resume",
		strings.NewReader(`{"file_url": "resume.pdf"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeEnvelope(t, rec)
	if !strings.Contains(resp.Message, "application/json") {
		t.Errorf("envelope message = %q, want content-type complaint", resp.Message)
	}
}

func TestParseResumeHandlerFetchFailure(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createParseResumeHandler(om)

	rec := postJSON(handler, `{"file_url": "/does/not/exist.pdf"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Status != "error" {
		t.Errorf("envelope status = %q, want error", resp.Status)
	}
	if resp.Message == "" {
		t.Error("envelope message should describe the fetch failure")
	}
}

func TestIsReadableHandlerMissingFileURL(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createIsReadableHandler(om)

	req := httptest.NewRequest(http.MethodPost, "/api/is_readable",
		strings.NewReader(`{"file_url": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Message != "Missing 'file_url' in request body" {
		t.Errorf("envelope message = %q", resp.Message)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := newTestServer(t, []string{"valid-key-1234567890"})

	tests := []struct {
		name       string
		apiKey     string
		authHeader string
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "missing key",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key",
			apiKey:     "wrong-key",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid key via header",
			apiKey:     "valid-key-1234567890",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "valid key via bearer token",
			authHeader: "Bearer valid-key-1234567890",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/parse_resume", nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestAuthMiddlewareSkipsWhenNoKeysConfigured(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	called := false
	handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/parse_resume", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !called {
		t.Error("handler should be reached when authentication is disabled")
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	oversized := `{"file_url": "` + strings.Repeat("x", 2048) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/parse_resume", strings.NewReader(oversized))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeEnvelope(t, rec)
	if !strings.Contains(resp.Message, "request body too large") {
		t.Errorf("envelope message = %q, want size limit complaint", resp.Message)
	}
}

func TestHealthHandler(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
	if resp["service"] != "resumeparse" {
		t.Errorf("service = %v, want resumeparse", resp["service"])
	}
	if _, ok := resp["download"]; !ok {
		t.Error("health response should report download status")
	}
}

func TestStatsHandler(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.statsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode stats response: %v", err)
	}

	pipeline, ok := resp["pipeline"].(map[string]any)
	if !ok {
		t.Fatal("stats response should include pipeline settings")
	}
	if pipeline["min_words"] != float64(50) {
		t.Errorf("min_words = %v, want 50", pipeline["min_words"])
	}

	rateLimiting, ok := resp["rate_limiting"].(map[string]any)
	if !ok {
		t.Fatal("stats response should include rate limiting info")
	}
	if rateLimiting["enabled"] != false {
		t.Errorf("rate limiting enabled = %v, want false", rateLimiting["enabled"])
	}
}

func TestWriteErrorEnvelopeCarriesData(t *testing.T) {
	rec := httptest.NewRecorder()
	payload := ReadabilityResult{IsReadable: false, ATSCompliant: false, Fields: map[string]bool{}}
	writeErrorEnvelope(rec, "PDF is not readable (might be scanned image or contains less than 50 words)", payload, http.StatusBadRequest)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp struct {
		Data       ReadabilityResult `json:"data"`
		Status     string            `json:"status"`
		Message    string            `json:"message"`
		StatusCode int               `json:"status_code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("status = %q, want error", resp.Status)
	}
	if resp.Data.IsReadable {
		t.Error("data payload should carry the negative verdict")
	}
}
