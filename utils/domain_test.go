package utils

import "testing"

func TestSanitizeDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Example.COM", "example.com"},
		{"https://example.com/path", "example.com"},
		{"http://example.com:8080", "example.com"},
		{"  example.com.  ", "example.com"},
		{"example.com", "example.com"},
	}

	for _, tc := range cases {
		if got := SanitizeDomain(tc.in); got != tc.want {
			t.Errorf("SanitizeDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValidDomain(t *testing.T) {
	valid := []string{"example.com", "sub.example.co.uk", "a-b.io", "https://example.com/x"}
	invalid := []string{"", "example", "-bad.com", "bad-.com", "exa mple.com"}

	for _, d := range valid {
		if !IsValidDomain(d) {
			t.Errorf("IsValidDomain(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if IsValidDomain(d) {
			t.Errorf("IsValidDomain(%q) = true, want false", d)
		}
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := BuildCacheKey("cache", "whois", "Example.COM"); got != "cache:whois:example.com" {
		t.Errorf("BuildCacheKey = %q", got)
	}
	if got := BuildCacheKey(); got != "" {
		t.Errorf("empty BuildCacheKey = %q, want empty", got)
	}
}
