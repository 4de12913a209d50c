package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 2, nil)
	defer rl.Close()

	if !rl.Allow("client") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("client") {
		t.Error("second request should be allowed within burst")
	}
	if rl.Allow("client") {
		t.Error("third request should be rejected, burst exhausted")
	}
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	rl := NewRateLimiter(60, 1, nil)
	defer rl.Close()

	if !rl.Allow("alice") {
		t.Error("alice's first request should be allowed")
	}
	if !rl.Allow("bob") {
		t.Error("bob's first request should be allowed, keys have independent buckets")
	}
	if rl.Allow("alice") {
		t.Error("alice's second request should be rejected")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(60, 1, nil)
	defer rl.Close()

	rl.Allow("stale")
	rl.Allow("fresh")

	rl.mu.Lock()
	rl.lastSeen["stale"] = time.Now().Add(-2 * limiterEvictionAge)
	rl.mu.Unlock()

	rl.cleanup(limiterEvictionAge)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, exists := rl.limiters["stale"]; exists {
		t.Error("stale limiter should have been evicted")
	}
	if _, exists := rl.limiters["fresh"]; !exists {
		t.Error("fresh limiter should have survived cleanup")
	}
}

func TestRateLimiterGetStats(t *testing.T) {
	rl := NewRateLimiter(120, 5, nil)
	defer rl.Close()

	rl.Allow("a")
	rl.Allow("b")

	stats := rl.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("rate_per_minute = %v, want 120", stats["rate_per_minute"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		authHeader string
		remoteAddr string
		byAPIKey   bool
		byIP       bool
		want       string
	}{
		{
			name:     "api key header",
			apiKey:   "secret-key",
			byAPIKey: true,
			want:     "api:secret-key",
		},
		{
			name:       "bearer token fallback",
			authHeader: "Bearer token-abc",
			byAPIKey:   true,
			want:       "api:token-abc",
		},
		{
			name:       "by ip",
			remoteAddr: "192.168.1.10:54321",
			byIP:       true,
			want:       "ip:192.168.1.10",
		},
		{
			name:       "api key preferred over ip",
			apiKey:     "secret-key",
			remoteAddr: "192.168.1.10:54321",
			byAPIKey:   true,
			byIP:       true,
			want:       "api:secret-key",
		},
		{
			name:       "no strategy enabled",
			apiKey:     "secret-key",
			remoteAddr: "192.168.1.10:54321",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/parse_resume", nil)
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			if tt.remoteAddr != "" {
				r.RemoteAddr = tt.remoteAddr
			}

			got := getRateLimitKey(r, tt.byAPIKey, tt.byIP)
			if got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name          string
		forwardedFor  string
		realIP        string
		remoteAddr    string
		want          string
	}{
		{
			name:         "forwarded-for first valid ip",
			forwardedFor: "203.0.113.7, 10.0.0.1",
			remoteAddr:   "192.168.1.1:1234",
			want:         "203.0.113.7",
		},
		{
			name:         "forwarded-for invalid falls through to real-ip",
			forwardedFor: "not-an-ip",
			realIP:       "198.51.100.4",
			remoteAddr:   "192.168.1.1:1234",
			want:         "198.51.100.4",
		},
		{
			name:       "remote addr host only",
			remoteAddr: "192.168.1.1:1234",
			want:       "192.168.1.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.1",
			want:       "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			if tt.forwardedFor != "" {
				r.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			r.RemoteAddr = tt.remoteAddr

			got := getClientIP(r)
			if got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"203.0.113.7", "203.0.113.7"},
		{"203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"garbage, 10.0.0.1", "10.0.0.1"},
		{"garbage", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseFirstIP(tt.input); got != tt.want {
			t.Errorf("parseFirstIP(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.input); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
