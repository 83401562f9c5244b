package services

import (
	"testing"

	"whoisgate/types"
)

const verisign = "whois.verisign-grs.com"

func TestClassifyFree(t *testing.T) {
	cl := NewClassifier()

	got := cl.Classify(verisign, `No match for domain "EXAMPLE.COM"`, "example.com")
	if got != types.ClassFree {
		t.Errorf("Classify = %v, want ClassFree", got)
	}
}

func TestClassifyTaken(t *testing.T) {
	cl := NewClassifier()

	got := cl.Classify(verisign, "Registrar: Example Registrar Inc.", "example.com")
	if got != types.ClassTaken {
		t.Errorf("Classify = %v, want ClassTaken", got)
	}
}

func TestClassifyUnknown(t *testing.T) {
	cl := NewClassifier()

	cases := []struct {
		name     string
		server   string
		response string
	}{
		{"unrelated text", verisign, "some unrelated text"},
		{"unknown server", "whois.nic.io", "Registrar: Example Registrar Inc."},
		{"empty response", verisign, ""},
		{"binary garbage", verisign, "\x00\xff\xfe\x01随便什么字节"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// 分类是全函数：任何输入都必须返回结果而不是panic
			if got := cl.Classify(tc.server, tc.response, "example.com"); got != types.ClassUnknown {
				t.Errorf("Classify = %v, want ClassUnknown", got)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	cl := NewClassifier()

	first := cl.Classify(verisign, "Registrar: X", "example.com")
	for i := 0; i < 100; i++ {
		if got := cl.Classify(verisign, "Registrar: X", "example.com"); got != first {
			t.Fatalf("iteration %d: Classify = %v, want %v", i, got, first)
		}
	}
}

func TestClassifyFreeRequiresUppercasedDomain(t *testing.T) {
	cl := NewClassifier()

	// Verisign响应中的域名是大写的，模式必须按大写域名匹配
	if got := cl.Classify(verisign, `No match for domain "example.com"`, "example.com"); got != types.ClassUnknown {
		t.Errorf("lowercase response should not match Free, got %v", got)
	}
}

func TestRegisterCustomRule(t *testing.T) {
	cl := NewClassifier()

	cl.Register(Rule{
		Server: "whois.nic.io",
		Match: func(response, domain string) types.Classification {
			if response == "NOT FOUND" {
				return types.ClassFree
			}
			return types.ClassUnknown
		},
	})

	if got := cl.Classify("WHOIS.NIC.IO", "NOT FOUND", "example.io"); got != types.ClassFree {
		t.Errorf("custom rule not applied, got %v", got)
	}
}

func TestQueryText(t *testing.T) {
	cl := NewClassifier()

	// Verisign走"domain <name>"约定
	if got := cl.QueryText(verisign, "example.com"); got != "domain example.com" {
		t.Errorf("QueryText = %q, want %q", got, "domain example.com")
	}

	// 没有规则的服务器直接发域名
	if got := cl.QueryText("whois.denic.de", "example.de"); got != "example.de" {
		t.Errorf("QueryText = %q, want %q", got, "example.de")
	}
}
