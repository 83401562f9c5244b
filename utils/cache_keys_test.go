package utils

import (
	"strings"
	"testing"
)

func TestBuildCacheKeyJoinsParts(t *testing.T) {
	if got := BuildCacheKey("cache", "whois", "example.com"); got != "cache:whois:example.com" {
		t.Errorf("BuildCacheKey = %q, want cache:whois:example.com", got)
	}
}

func TestBuildCacheKeyTreatsColonPartAsURL(t *testing.T) {
	// 段内带冒号会被当成带scheme或端口的地址归一化，
	// 所以命名空间前缀必须分段传入而不是整串传
	if got := BuildCacheKey("cache:whois", "example.com"); got == "cache:whois:example.com" {
		t.Errorf("colon-bearing part should be normalized, got %q", got)
	}
	if got := BuildCacheKey("cache", "https://Example.COM/path"); got != "cache:example.com" {
		t.Errorf("BuildCacheKey = %q, want cache:example.com", got)
	}
}

func TestBuildCacheKeyBoundsLongParts(t *testing.T) {
	long := strings.Repeat("a", 200)
	key := BuildCacheKey("cache", long)
	if len(key) > 100 {
		t.Errorf("key length = %d, overlong parts should be hashed down", len(key))
	}
}
