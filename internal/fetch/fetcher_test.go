package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resumeparse/internal/config"
	"resumeparse/internal/errors"
)

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Expected logger: %v", err)
	}
	cfg := &config.FetchConfig{
		Timeout:         5 * time.Second,
		MaxDownloadSize: 1024,
		UserAgent:       "resumeparse-test",
	}
	return New(cfg, logger)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error but got none")
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("Expected AppError in chain, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("Expected error code %q, got %q", code, appErr.Code)
	}
}

func TestFetchDownload(t *testing.T) {
	body := []byte("%PDF-1.4 fake document")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	data, err := testFetcher(t).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if string(data) != string(body) {
		t.Errorf("Expected body to round-trip, got %q", data)
	}
}

func TestFetchDownloadRejectsNonPDFContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not a pdf</html>"))
	}))
	defer server.Close()

	_, err := testFetcher(t).Fetch(context.Background(), server.URL)
	assertErrorCode(t, err, errors.ErrCodeNotAPDF)
}

func TestFetchDownloadRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := testFetcher(t).Fetch(context.Background(), server.URL)
	assertErrorCode(t, err, errors.ErrCodeDownloadFailed)
}

func TestFetchDownloadRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer server.Close()

	_, err := testFetcher(t).Fetch(context.Background(), server.URL)
	assertErrorCode(t, err, errors.ErrCodeDownloadFailed)
}

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0600); err != nil {
		t.Fatalf("Expected test file: %v", err)
	}

	data, err := testFetcher(t).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("Expected file contents, got %q", data)
	}
}

func TestFetchLocalFileMissing(t *testing.T) {
	_, err := testFetcher(t).Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assertErrorCode(t, err, errors.ErrCodeFileNotFound)
}

func TestFetchLocalFileWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0600); err != nil {
		t.Fatalf("Expected test file: %v", err)
	}

	_, err := testFetcher(t).Fetch(context.Background(), path)
	assertErrorCode(t, err, errors.ErrCodeNotAPDF)
}

// The domain error must survive the breaker even when something in the
// chain wraps it; download matches with errors.As, not a bare assertion.
func TestFetchDownloadSurfacesWrappedAppError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Expected logger: %v", err)
	}
	cfg := &config.FetchConfig{
		Timeout:         5 * time.Second,
		MaxDownloadSize: 1024,
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			MinRequests:      100,
			FailureThreshold: 1.0,
		},
	}
	f := New(cfg, logger)

	_, err = f.Fetch(context.Background(), server.URL)
	assertErrorCode(t, err, errors.ErrCodeDownloadFailed)

	// A wrapped AppError must still be recognized, not re-wrapped into a
	// fresh network error.
	wrapped := fmt.Errorf("retry attempt failed: %w",
		errors.NewNetworkError(errors.ErrCodeDownloadFailed, "download returned status 404", nil))
	var appErr *errors.AppError
	if !stderrors.As(wrapped, &appErr) {
		t.Fatalf("Expected AppError through wrapping")
	}
	assertErrorCode(t, wrapped, errors.ErrCodeDownloadFailed)
}

func TestDownloadBreakerDisabled(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Expected logger: %v", err)
	}

	breaker := NewDownloadBreaker(&config.CircuitBreakerConfig{Enabled: false}, logger)
	if breaker != nil {
		t.Fatalf("Expected nil breaker when disabled")
	}

	// Disabled breaker passes calls through.
	data, err := breaker.Execute(func() ([]byte, error) { return []byte("ok"), nil })
	if err != nil || string(data) != "ok" {
		t.Errorf("Expected pass-through execution, got %q, %v", data, err)
	}
	if !breaker.IsHealthy() {
		t.Errorf("Expected disabled breaker to report healthy")
	}
	if stats := breaker.GetStats(); stats["enabled"] != false {
		t.Errorf("Expected disabled stats, got %v", stats)
	}
}
