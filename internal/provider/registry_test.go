package provider

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.tiktok.com/@user/video/123", "tiktok-advanced"},
		{"https://vt.tiktok.com/ZSB2LtXQF/", "tiktok-advanced"},
		{"https://www.facebook.com/watch?v=1", "facebook"},
		{"https://fb.watch/abc", "facebook"},
		{"https://www.instagram.com/reel/abc/", "instagram"},
		{"https://youtu.be/dQw4w9WgXcQ", "youtube"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "youtube"},
		{"https://sfile.mobi/abc", "sfile"},
		{"  https://SFILE.MOBI/abc  ", "sfile"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			e, err := Detect(tt.url)
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if e.Name != tt.want {
				t.Errorf("Detect() = %q, want %q", e.Name, tt.want)
			}
		})
	}
}

func TestDetectUnsupported(t *testing.T) {
	for _, u := range []string{"https://example.com/video", "not a url", "", "https://notyoutube.com/x"} {
		if _, err := Detect(u); err == nil {
			t.Errorf("Detect(%q) succeeded, want error", u)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, e := range Extractors {
		got, err := Lookup(e.Name)
		if err != nil {
			t.Errorf("Lookup(%q) error: %v", e.Name, err)
			continue
		}
		if got.Name != e.Name || got.Run == nil {
			t.Errorf("Lookup(%q) = %+v", e.Name, got)
		}
	}

	if _, err := Lookup("TikTok-V2"); err != nil {
		t.Errorf("Lookup(TikTok-V2) error: %v", err)
	}

	_, err := Lookup("vimeo")
	if !errors.Is(err, ErrUnknownExtractor) {
		t.Errorf("Lookup(vimeo) error = %v, want ErrUnknownExtractor", err)
	}
}
