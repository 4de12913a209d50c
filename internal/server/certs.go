package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumeparse/internal/config"
	"resumeparse/internal/errors"
	"resumeparse/internal/observability"

	"github.com/fsnotify/fsnotify"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// VaultClientInterface defines the interface for Vault operations
type VaultClientInterface interface {
	GetSecretV2(path string) (*config.VaultSecret, error)
	GetStringSecret(path, key string) (string, error)
	GetStringSliceSecret(path, key string) ([]string, error)
}

// ReloadCallback is called when certificates are reloaded
type ReloadCallback func(success bool, err error)

// CertificateMetrics holds metrics about certificate operations
type CertificateMetrics struct {
	ReloadCount        int64
	ReloadSuccessCount int64
	ReloadFailureCount int64
	LastReloadTime     time.Time
	LastReloadSuccess  bool
	LastReloadError    string
}

// CertificateManager keeps the TLS certificates current. It serves
// certificates to handshakes from memory and reloads them when the
// source changes: file changes arrive through fsnotify with a debounce,
// Vault changes are detected by polling the KV v2 secret version.
type CertificateManager struct {
	mu sync.RWMutex

	serverCert       *tls.Certificate
	caCertPool       *x509.CertPool
	serverCertExpiry time.Time
	lastReloadTime   time.Time

	tlsConfig  *config.TLSConfig
	autoReload *config.AutoReloadConfig

	// File watching
	fsWatcher     *fsnotify.Watcher
	debounceTimer *time.Timer

	// Vault polling
	vaultClient      VaultClientInterface
	lastVaultVersion int64

	stopChan chan struct{}
	running  bool

	reloadCallbacks []ReloadCallback
	logger          *errors.Logger
	om              *observability.ObservabilityManager

	reloadCount        int64
	reloadSuccessCount int64
	reloadFailureCount int64
	lastReloadSuccess  bool
	lastReloadError    string
}

// NewCertificateManager creates a new certificate manager
func NewCertificateManager(tlsConfig *config.TLSConfig, autoReload *config.AutoReloadConfig, vaultClient VaultClientInterface, om *observability.ObservabilityManager, logger *errors.Logger) *CertificateManager {
	return &CertificateManager{
		tlsConfig:       tlsConfig,
		autoReload:      autoReload,
		vaultClient:     vaultClient,
		logger:          logger,
		om:              om,
		stopChan:        make(chan struct{}),
		reloadCallbacks: make([]ReloadCallback, 0),
	}
}

// Start loads the initial certificates and starts the configured watchers
func (cm *CertificateManager) Start() error {
	if err := cm.loadCertificates(); err != nil {
		return fmt.Errorf("failed to load initial certificates: %w", err)
	}

	cm.mu.Lock()
	cm.running = true
	cm.mu.Unlock()

	if err := cm.startFileWatcher(); err != nil {
		return err
	}
	cm.startVaultPolling()
	cm.startExpiryMonitoring()

	return nil
}

// Stop stops all watchers
func (cm *CertificateManager) Stop() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.running {
		return nil
	}
	cm.running = false
	close(cm.stopChan)

	if cm.debounceTimer != nil {
		cm.debounceTimer.Stop()
	}
	if cm.fsWatcher != nil {
		if err := cm.fsWatcher.Close(); err != nil {
			if cm.logger != nil {
				cm.logger.LogError(err, "Failed to close certificate file watcher")
			}
			return err
		}
	}

	if cm.logger != nil {
		cm.logger.Info("Certificate manager stopped")
	}
	return nil
}

// GetServerCertificate returns the current server certificate for TLS handshakes
func (cm *CertificateManager) GetServerCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCert == nil {
		return nil, fmt.Errorf("no server certificate available")
	}

	if time.Now().After(cm.serverCertExpiry) {
		if cm.logger != nil {
			cm.logger.LogError(fmt.Errorf("server certificate expired"), "Server certificate expired",
				"expiry", cm.serverCertExpiry,
				"server_name", hello.ServerName)
		}
		return nil, fmt.Errorf("server certificate expired")
	}

	return cm.serverCert, nil
}

// VerifyPeerCertificate verifies peer certificates using the current CA pool
func (cm *CertificateManager) VerifyPeerCertificate(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
	if len(rawCerts) == 0 {
		return fmt.Errorf("no peer certificates provided")
	}

	cert, err := x509.ParseCertificate(rawCerts[0])
	if err != nil {
		return fmt.Errorf("failed to parse peer certificate: %w", err)
	}

	cm.mu.RLock()
	caCertPool := cm.caCertPool
	cm.mu.RUnlock()

	if caCertPool == nil {
		return fmt.Errorf("no CA certificate pool available")
	}

	if _, err := cert.Verify(x509.VerifyOptions{Roots: caCertPool}); err != nil {
		return fmt.Errorf("peer certificate verification failed: %w", err)
	}

	return nil
}

// ReloadCertificates manually triggers a certificate reload
func (cm *CertificateManager) ReloadCertificates() error {
	return cm.loadCertificates()
}

// AddReloadCallback adds a callback to be called when certificates are reloaded
func (cm *CertificateManager) AddReloadCallback(callback ReloadCallback) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.reloadCallbacks = append(cm.reloadCallbacks, callback)
}

// CheckExpiry returns the time until the server certificate expires
func (cm *CertificateManager) CheckExpiry() (time.Duration, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCertExpiry.IsZero() {
		return 0, fmt.Errorf("no certificates loaded")
	}
	return time.Until(cm.serverCertExpiry), nil
}

// GetMetrics returns certificate management metrics
func (cm *CertificateManager) GetMetrics() *CertificateMetrics {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return &CertificateMetrics{
		ReloadCount:        cm.reloadCount,
		ReloadSuccessCount: cm.reloadSuccessCount,
		ReloadFailureCount: cm.reloadFailureCount,
		LastReloadTime:     cm.lastReloadTime,
		LastReloadSuccess:  cm.lastReloadSuccess,
		LastReloadError:    cm.lastReloadError,
	}
}

// AutoReloadStatus reports watcher state for the health endpoint
func (cm *CertificateManager) AutoReloadStatus() map[string]any {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.autoReload == nil || !cm.autoReload.Enabled {
		return map[string]any{"enabled": false}
	}

	status := map[string]any{
		"enabled":               true,
		"file_watcher_enabled":  cm.autoReload.FileWatcher.Enabled,
		"file_watcher_running":  cm.fsWatcher != nil,
		"vault_watcher_enabled": cm.autoReload.VaultWatcher.Enabled,
	}
	if cm.autoReload.VaultWatcher.Enabled {
		status["vault_secret_path"] = cm.autoReload.VaultWatcher.SecretPath
		status["vault_last_version"] = cm.lastVaultVersion
	}
	return status
}

// loadCertificates loads certificates from files or content and swaps
// them in atomically
func (cm *CertificateManager) loadCertificates() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cert, err := cm.loadCertificatePair()
	if err != nil {
		return err
	}

	if len(cert.Certificate) > 0 {
		x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return fmt.Errorf("failed to parse server certificate: %w", err)
		}
		cm.serverCertExpiry = x509Cert.NotAfter
	}

	caCertPool, err := cm.loadCAPool()
	if err != nil {
		return err
	}

	cm.serverCert = &cert
	cm.caCertPool = caCertPool
	cm.lastReloadTime = time.Now()

	cm.reloadCount++
	cm.reloadSuccessCount++
	cm.lastReloadSuccess = true
	cm.lastReloadError = ""
	cm.recordReloadMetrics(true, nil)
	cm.notifyCallbacks(true, nil)

	if cm.logger != nil {
		cm.logger.Info("Certificates reloaded successfully",
			"server_cert_expiry", cm.serverCertExpiry,
			"reload_time", cm.lastReloadTime)
	}

	return nil
}

// loadCertificatePair loads the certificate and key pair from content
// (Vault) or files
func (cm *CertificateManager) loadCertificatePair() (tls.Certificate, error) {
	if cm.tlsConfig.CertContent != "" && cm.tlsConfig.KeyContent != "" {
		return tls.X509KeyPair([]byte(cm.tlsConfig.CertContent), []byte(cm.tlsConfig.KeyContent))
	}
	if cm.tlsConfig.CertFile != "" && cm.tlsConfig.KeyFile != "" {
		return tls.LoadX509KeyPair(cm.tlsConfig.CertFile, cm.tlsConfig.KeyFile)
	}
	return tls.Certificate{}, fmt.Errorf("TLS certificate and key are required (provide either files or content)")
}

// loadCAPool loads the CA certificate pool for mutual TLS
func (cm *CertificateManager) loadCAPool() (*x509.CertPool, error) {
	if cm.tlsConfig.Mode != "mutual" {
		return nil, nil
	}

	var caCert []byte
	if cm.tlsConfig.CAContent != "" {
		caCert = []byte(cm.tlsConfig.CAContent)
	} else if cm.tlsConfig.CAFile != "" {
		data, err := os.ReadFile(cm.tlsConfig.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		caCert = data
	}

	if len(caCert) == 0 {
		return nil, nil
	}

	caCertPool := x509.NewCertPool()
	if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}
	return caCertPool, nil
}

// triggerReload is called by watchers when the certificate source changed
func (cm *CertificateManager) triggerReload() {
	if err := cm.loadCertificates(); err != nil {
		cm.mu.Lock()
		cm.reloadCount++
		cm.reloadFailureCount++
		cm.lastReloadSuccess = false
		cm.lastReloadError = err.Error()
		cm.mu.Unlock()

		cm.recordReloadMetrics(false, err)

		if cm.logger != nil {
			cm.logger.LogError(err, "Failed to reload certificates")
		}
		cm.notifyCallbacks(false, err)
	}
}

func (cm *CertificateManager) notifyCallbacks(success bool, err error) {
	for _, callback := range cm.reloadCallbacks {
		go callback(success, err)
	}
}

// startFileWatcher watches the certificate files for changes. Events are
// debounced because certificate rotation usually rewrites several files
// in quick succession.
func (cm *CertificateManager) startFileWatcher() error {
	if cm.autoReload == nil || !cm.autoReload.FileWatcher.Enabled {
		return nil
	}

	files := cm.watchedFiles()
	if len(files) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cm.fsWatcher = watcher

	for _, file := range files {
		// Watch the directory too, to catch atomic writes (renames)
		if err := watcher.Add(file); err != nil && cm.logger != nil {
			cm.logger.Warn("Failed to watch certificate file", "file", file, "error", err)
		}
		if err := watcher.Add(filepath.Dir(file)); err != nil && cm.logger != nil {
			cm.logger.Warn("Failed to watch certificate directory", "directory", filepath.Dir(file), "error", err)
		}
	}

	debounce := cm.autoReload.FileWatcher.DebounceDelay
	if debounce == 0 {
		debounce = time.Second
	}

	go cm.fileWatchLoop(files, debounce)

	if cm.logger != nil {
		cm.logger.Info("Certificate file watcher started",
			"files", files,
			"debounce_delay", debounce)
	}
	return nil
}

func (cm *CertificateManager) watchedFiles() []string {
	var files []string
	for _, f := range []string{cm.tlsConfig.CertFile, cm.tlsConfig.KeyFile, cm.tlsConfig.CAFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

func (cm *CertificateManager) fileWatchLoop(files []string, debounce time.Duration) {
	for {
		select {
		case event, ok := <-cm.fsWatcher.Events:
			if !ok {
				return
			}
			if cm.isWatchedEvent(event, files) {
				cm.scheduleReload(debounce)
			}
		case err, ok := <-cm.fsWatcher.Errors:
			if !ok {
				return
			}
			if cm.logger != nil {
				cm.logger.LogError(err, "Certificate file watcher error")
			}
		case <-cm.stopChan:
			return
		}
	}
}

func (cm *CertificateManager) isWatchedEvent(event fsnotify.Event, files []string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	for _, file := range files {
		if event.Name == file || filepath.Base(event.Name) == filepath.Base(file) {
			return true
		}
	}
	return false
}

func (cm *CertificateManager) scheduleReload(debounce time.Duration) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.debounceTimer != nil {
		cm.debounceTimer.Stop()
	}
	cm.debounceTimer = time.AfterFunc(debounce, func() {
		if cm.logger != nil {
			cm.logger.Info("Certificate files changed, triggering reload")
		}
		cm.triggerReload()
	})
}

// startVaultPolling polls the Vault KV v2 secret and reloads when its
// version advances
func (cm *CertificateManager) startVaultPolling() {
	if cm.autoReload == nil || !cm.autoReload.VaultWatcher.Enabled {
		return
	}
	if cm.vaultClient == nil {
		if cm.logger != nil {
			cm.logger.Warn("Vault watcher enabled but Vault client is nil")
		}
		return
	}

	pollInterval := cm.autoReload.VaultWatcher.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.pollVault()
			case <-cm.stopChan:
				return
			}
		}
	}()

	if cm.logger != nil {
		cm.logger.Info("Vault certificate watcher started",
			"secret_path", cm.autoReload.VaultWatcher.SecretPath,
			"poll_interval", pollInterval)
	}
}

func (cm *CertificateManager) pollVault() {
	secret, err := cm.vaultClient.GetSecretV2(cm.autoReload.VaultWatcher.SecretPath)
	if err != nil {
		if cm.logger != nil {
			cm.logger.LogError(err, "Failed to check Vault for certificate updates")
		}
		return
	}

	cm.mu.Lock()
	changed := secret.Version > cm.lastVaultVersion
	if changed {
		cm.lastVaultVersion = secret.Version
		if certContent, ok := secret.Data["cert"].(string); ok && certContent != "" {
			cm.tlsConfig.CertContent = certContent
		}
		if keyContent, ok := secret.Data["key"].(string); ok && keyContent != "" {
			cm.tlsConfig.KeyContent = keyContent
		}
		if caContent, ok := secret.Data["ca"].(string); ok && caContent != "" {
			cm.tlsConfig.CAContent = caContent
		}
	}
	cm.mu.Unlock()

	if changed {
		if cm.logger != nil {
			cm.logger.Info("Vault TLS secret changed, triggering reload",
				"version", secret.Version)
		}
		cm.triggerReload()
	}
}

// recordReloadMetrics records certificate reload metrics to OpenTelemetry.
// Callers hold cm.mu.
func (cm *CertificateManager) recordReloadMetrics(success bool, err error) {
	if cm.om == nil {
		return
	}
	metrics := cm.om.GetMetrics()
	if metrics == nil || metrics.CertReloadCount == nil {
		return
	}

	ctx := context.Background()
	attrs := []attribute.KeyValue{
		attribute.String("cert_type", "server"),
	}
	if success {
		attrs = append(attrs, attribute.String("status", "success"))
	} else {
		errorMsg := ""
		if err != nil {
			errorMsg = err.Error()
		}
		attrs = append(attrs,
			attribute.String("status", "failure"),
			attribute.String("error", errorMsg))
	}
	metrics.CertReloadCount.Add(ctx, 1, metric.WithAttributes(attrs...))

	cm.recordExpiryMetric(metrics)
}

func (cm *CertificateManager) recordExpiryMetric(metrics *observability.Metrics) {
	if metrics.CertExpiryTime == nil || cm.serverCertExpiry.IsZero() {
		return
	}
	metrics.CertExpiryTime.Record(context.Background(),
		time.Until(cm.serverCertExpiry).Seconds(),
		metric.WithAttributes(attribute.String("cert_type", "server")))
}

// startExpiryMonitoring periodically refreshes the expiry gauge
func (cm *CertificateManager) startExpiryMonitoring() {
	if cm.om == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.mu.RLock()
				cm.recordExpiryMetric(cm.om.GetMetrics())
				cm.mu.RUnlock()
			case <-cm.stopChan:
				return
			}
		}
	}()
}
