package httputil

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://example.com/path", false},
		{"HTTP rejected", "http://example.com/path", true},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"FTP rejected", "ftp://example.com/file", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"valid with port", "https://example.com:8080/path", false},
		{"valid with query", "https://example.com/path?q=test&a=b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://sfile.mobi/abc", false},
		{"http://sfile.mobi/abc", false},
		{"ftp://sfile.mobi/abc", true},
		{"javascript:alert(1)", true},
		{"http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateTarget(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTarget(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base, slug, want string
	}{
		{"https://ryin.info/", "abc123", "https://ryin.info/abc123"},
		{"https://ryin.info", "abc123", "https://ryin.info/abc123"},
		{"https://ryin.info/", "/abc123", "https://ryin.info/abc123"},
		{"https://ryin.info", "", "https://ryin.info/"},
	}

	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.slug); got != tt.want {
			t.Errorf("BuildURL(%q, %q) = %q, want %q", tt.base, tt.slug, got, tt.want)
		}
	}
}

func TestResolveWithQuery(t *testing.T) {
	tests := []struct {
		name      string
		base, ref string
		want      string
	}{
		{"relative path", "https://sfile.mobi/8tZaFADE7Ca", "/download/123", "https://sfile.mobi/download/123?k=12"},
		{"existing query", "https://sfile.mobi/x", "https://sfile.mobi/download/1?token=abc", "https://sfile.mobi/download/1?token=abc&k=12"},
		{"query order and escaping kept", "https://sfile.mobi/x", "/download/1?z=1&a=%2f&b=x+y", "https://sfile.mobi/download/1?z=1&a=%2f&b=x+y&k=12"},
		{"plain http page", "http://sfile.mobi/x", "/download/7", "http://sfile.mobi/download/7?k=12"},
		{"absolute other host", "https://sfile.mobi/x", "https://cdn.example.com/f", "https://cdn.example.com/f?k=12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWithQuery(tt.base, tt.ref, "k", "12")
			if err != nil {
				t.Fatalf("ResolveWithQuery() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveWithQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
