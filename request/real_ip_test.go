package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "10.0.0.1:41000", "10.0.0.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "192.168.1.9"}, "10.0.0.1:41000", "192.168.1.9"},
		{"invalid x-real-ip falls through", map[string]string{"X-Real-IP": "nope"}, "10.0.0.1:41000", "10.0.0.1"},
		{"x-forwarded-for first hop", map[string]string{"X-Forwarded-For": "203.0.113.4, 10.0.0.2"}, "10.0.0.1:41000", "203.0.113.4"},
		{"ipv6 remote", nil, "[::1]:8080", "::1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, RealIP(r))
		})
	}
}
