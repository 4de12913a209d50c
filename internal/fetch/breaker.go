package fetch

import (
	"resumeparse/internal/config"
	"resumeparse/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// DownloadBreaker wraps remote document downloads with circuit breaker
// protection. A nil breaker means protection is disabled and calls pass
// through.
type DownloadBreaker struct {
	cb *gobreaker.CircuitBreaker[[]byte]
}

// NewDownloadBreaker creates a circuit breaker for remote downloads.
// Returns nil when the breaker is disabled in config.
func NewDownloadBreaker(cfg *config.CircuitBreakerConfig, logger *errors.Logger) *DownloadBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "document-download",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &DownloadBreaker{
		cb: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// Execute runs the download function with circuit breaker protection
func (db *DownloadBreaker) Execute(fn func() ([]byte, error)) ([]byte, error) {
	if db == nil || db.cb == nil {
		return fn()
	}
	return db.cb.Execute(fn)
}

// GetStats returns circuit breaker statistics
func (db *DownloadBreaker) GetStats() map[string]any {
	if db == nil || db.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    db.cb.Name(),
		"state":   db.cb.State().String(),
		"counts":  db.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (db *DownloadBreaker) IsHealthy() bool {
	if db == nil || db.cb == nil {
		return true
	}
	return db.cb.State() == gobreaker.StateClosed
}
