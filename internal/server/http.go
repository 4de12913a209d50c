package server

import (
	"time"

	"resumeparse/internal/config"
	resumeparseErrors "resumeparse/internal/errors"
	"resumeparse/internal/fetch"
	"resumeparse/internal/parser"
)

// ParseRequest is the request body shared by the parse and readability
// endpoints. The file_url may be a remote URL or a local path.
type ParseRequest struct {
	FileURL string `json:"file_url"`
}

// APIResponse is the envelope wrapping every API response body.
type APIResponse struct {
	Data       any    `json:"data"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// ReadabilityResult is the data payload of the readability endpoint.
type ReadabilityResult struct {
	IsReadable   bool            `json:"is_readable"`
	ATSCompliant bool            `json:"ats_compliant"`
	Fields       map[string]bool `json:"fields"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Document processing
	Fetcher  *fetch.Fetcher
	Pipeline *parser.Pipeline

	// Logger
	Logger *resumeparseErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *resumeparseErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Fetcher:        fetch.New(&appCfg.Fetch, logger),
		Pipeline: parser.New(parser.Options{
			MinWords:      appCfg.Pipeline.MinWords,
			NameScanLines: appCfg.Pipeline.NameScanLines,
		}),
		Logger: logger,
	}
}
