package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.viber.com", true},
		{"http://localhost:8080", true},
		{"https://example.com/media/video.mp4", true},
		{"invalid-url", false},
		{"www.missing-scheme.com", false},
		{"https://", false},
		{"", false},
		{" https://www.viber.com ", false},
	}

	for _, test := range tests {
		t.Run(test.url, func(t *testing.T) {
			got := IsURL(test.url)
			if got != test.expected {
				t.Errorf("IsURL(%v) = %v; want %v", test.url, got, test.expected)
			}
		})
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		method  string
		want    string
		wantErr bool
	}{
		{"chatapi", "https://chatapi.viber.com/pa", "send_message", "https://chatapi.viber.com/pa/send_message", false},
		{"trailing slash", "https://chatapi.viber.com/pa/", "get_online", "https://chatapi.viber.com/pa/get_online", false},
		{"root", "http://127.0.0.1:8080", "set_webhook", "http://127.0.0.1:8080/set_webhook", false},
		{"root slash", "http://127.0.0.1:8080/", "/post", "http://127.0.0.1:8080/post", false},
		{"proxy query", "https://proxy.example.com/viber?tenant=1", "get_account_info", "https://proxy.example.com/viber/get_account_info?tenant=1", false},
		{"relative", "chatapi.viber.com/pa", "send_message", "", true},
		{"malformed", "http://[::1", "send_message", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JoinURL(tt.base, tt.method)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
