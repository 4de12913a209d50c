// Package fetch acquires resume documents from http(s) URLs or local
// paths, enforcing PDF checks before any bytes reach the extractor.
package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"resumeparse/internal/config"
	"resumeparse/internal/errors"
	"resumeparse/internal/utils"
)

// Fetcher resolves a file_url, which may be a remote URL or a local
// path, into document bytes.
type Fetcher struct {
	client  *http.Client
	breaker *DownloadBreaker
	cfg     *config.FetchConfig
	logger  *errors.Logger
}

// New creates a document fetcher from configuration.
func New(cfg *config.FetchConfig, logger *errors.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: NewDownloadBreaker(&cfg.CircuitBreaker, logger),
		cfg:     cfg,
		logger:  logger,
	}
}

// Fetch returns the raw bytes of the document at source. Remote sources
// must respond 200 with a PDF Content-Type; local sources must exist and
// carry a .pdf extension.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if utils.IsURL(source) {
		return f.download(ctx, source)
	}
	return f.readLocal(source)
}

func (f *Fetcher) download(ctx context.Context, fileURL string) ([]byte, error) {
	f.logger.Debug("Downloading document", "url", fileURL)

	data, err := f.breaker.Execute(func() ([]byte, error) {
		return f.doDownload(ctx, fileURL)
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.NewNetworkError(
			errors.ErrCodeDownloadFailed,
			"failed to download document",
			err,
		).WithContext("url", fileURL)
	}

	f.logger.Info("Document downloaded",
		"url", fileURL,
		"size", utils.FormatFileSize(int64(len(data))))
	return data, nil
}

func (f *Fetcher) doDownload(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, errors.NewValidationError(
			errors.ErrCodeInvalidRequest,
			"invalid document URL",
			err,
		).WithContext("url", fileURL)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(
			errors.ErrCodeDownloadFailed,
			"failed to download document",
			err,
		).WithContext("url", fileURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewNetworkError(
			errors.ErrCodeDownloadFailed,
			fmt.Sprintf("download returned status %d", resp.StatusCode),
			nil,
		).WithContext("url", fileURL).WithContext("status", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "pdf") {
		return nil, errors.NewValidationError(
			errors.ErrCodeNotAPDF,
			fmt.Sprintf("document is not a PDF (Content-Type: %s)", contentType),
			nil,
		).WithContext("url", fileURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxDownloadSize+1))
	if err != nil {
		return nil, errors.NewNetworkError(
			errors.ErrCodeDownloadFailed,
			"failed to read document body",
			err,
		).WithContext("url", fileURL)
	}
	if int64(len(data)) > f.cfg.MaxDownloadSize {
		return nil, errors.NewValidationError(
			errors.ErrCodeDownloadFailed,
			fmt.Sprintf("document exceeds maximum download size of %s", utils.FormatFileSize(f.cfg.MaxDownloadSize)),
			nil,
		).WithContext("url", fileURL)
	}

	return data, nil
}

func (f *Fetcher) readLocal(path string) ([]byte, error) {
	if err := utils.ValidateInputFile(path); err != nil {
		return nil, errors.NewIOError(
			errors.ErrCodeFileNotFound,
			"document file is not accessible",
			err,
		).WithContext("path", path)
	}

	if !utils.IsPDFFile(path) {
		return nil, errors.NewValidationError(
			errors.ErrCodeNotAPDF,
			"document file does not have a .pdf extension",
			nil,
		).WithContext("path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(
			errors.ErrCodeFileNotReadable,
			"failed to read document file",
			err,
		).WithContext("path", path)
	}

	f.logger.Debug("Document read from disk",
		"path", path,
		"size", utils.FormatFileSize(int64(len(data))))
	return data, nil
}

// BreakerStats exposes download circuit breaker statistics for the
// stats endpoint.
func (f *Fetcher) BreakerStats() map[string]any {
	return f.breaker.GetStats()
}

// Healthy reports whether the download path is accepting requests.
func (f *Fetcher) Healthy() bool {
	return f.breaker.IsHealthy()
}
