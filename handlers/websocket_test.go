package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		host    string
		allowed []string
		want    bool
	}{
		{name: "no origin", host: "api.test", want: true},
		{name: "wildcard foreign", origin: "http://evil.test", host: "api.test", allowed: []string{"*"}, want: false},
		{name: "wildcard same host", origin: "http://api.test", host: "api.test", allowed: []string{"*"}, want: true},
		{name: "listed", origin: "http://app.test", host: "api.test", allowed: []string{"http://app.test"}, want: true},
		{name: "same host", origin: "http://api.test", host: "api.test", want: true},
		{name: "foreign", origin: "http://evil.test", host: "api.test", allowed: []string{"http://app.test"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/recipes/feed", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, originAllowed(r, tt.allowed))
		})
	}
}
