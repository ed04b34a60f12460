package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.7 ", "::1", "garbage", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"11.0.0.1", false},
		{"192.168.1.7", true},
		{"192.168.1.8", false},
		{"::1", true},
		{"::ffff:10.0.0.1", true},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
	if m.IsEmpty() {
		t.Error("matcher should not be empty")
	}
	if !NewIPMatcher([]string{"nope"}).IsEmpty() {
		t.Error("matcher with only invalid entries should be empty")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "127.0.0.1:5555"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := ClientIP(r, false); got != "127.0.0.1" {
		t.Errorf("ClientIP(untrusted) = %q, want 127.0.0.1", got)
	}
	if got := ClientIP(r, true); got != "203.0.113.9" {
		t.Errorf("ClientIP(trusted) = %q, want 203.0.113.9", got)
	}

	r.Header.Set("CF-Connecting-IP", "198.51.100.4")
	if got := ClientIP(r, true); got != "198.51.100.4" {
		t.Errorf("ClientIP(cf) = %q, want 198.51.100.4", got)
	}
}

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"1.2.3.4:80":     "1.2.3.4",
		"[::1]:8080":     "::1",
		"example.com":    "example.com",
		"api.local:8080": "api.local",
		"":               "",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}
