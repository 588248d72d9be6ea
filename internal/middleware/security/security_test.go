package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "direct connection",
			remoteAddr: "203.0.113.9:51000",
			want:       "203.0.113.9",
		},
		{
			name:       "trusted proxy honors forwarded-for",
			remoteAddr: "127.0.0.1:51000",
			xff:        "203.0.113.9, 10.0.0.1",
			want:       "203.0.113.9",
		},
		{
			name:       "untrusted peer cannot spoof",
			remoteAddr: "203.0.113.9:51000",
			xff:        "198.51.100.7",
			want:       "203.0.113.9",
		},
		{
			name:       "trusted proxy falls back to real-ip",
			remoteAddr: "192.168.1.10:443",
			xri:        "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "garbage forwarded-for ignored",
			remoteAddr: "127.0.0.1:51000",
			xff:        "not-an-ip",
			want:       "127.0.0.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ExtractClientIP(r); got != tt.want {
				t.Errorf("ExtractClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeadersApplied(t *testing.T) {
	h := NewHeaders(DefaultHeadersConfig())
	handler := h.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected CSP header")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be set on plain HTTP")
	}
}
