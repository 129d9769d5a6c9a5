package ui

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"mediagrab/internal/media"
)

func TestRenderSuccess(t *testing.T) {
	env := media.Succeed("mediagrab", media.TikTokAdvanced{
		Author: "Rhu",
		Stats:  media.Stats{Likes: 5100},
		Type:   media.PostImages,
		Images: []string{"https://example.com/1.jpg", "https://example.com/2.jpg"},
	})
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	out := Render("tiktok-advanced", data)
	for _, want := range []string{
		"tiktok-advanced",
		"ok",
		"by mediagrab",
		"author",
		"Rhu",
		"likes",
		"5100",
		"images.1",
		"https://example.com/2.jpg",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "videoDownloadUrl") {
		t.Errorf("Render() printed an empty field:\n%s", out)
	}
}

func TestRenderFailure(t *testing.T) {
	env := media.Fail[media.File]("mediagrab", errors.New("download link not found on page"))
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	out := Render("sfile", data)
	if !strings.Contains(out, "failed") {
		t.Errorf("Render() output missing failed marker:\n%s", out)
	}
	if !strings.Contains(out, "download link not found on page") {
		t.Errorf("Render() output missing message:\n%s", out)
	}
}

func TestFlatten(t *testing.T) {
	env := media.Succeed("x", []media.Variant{
		{Kind: media.Video, URL: "https://example.com/v.mp4"},
		{Kind: media.Image, URL: "https://example.com/i.jpg", Preview: "https://example.com/p.jpg"},
	})
	data, _ := json.Marshal(env)

	out := Render("instagram", data)
	for _, want := range []string{"0.type", "video", "1.url", "https://example.com/i.jpg", "1.preview"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q:\n%s", want, out)
		}
	}
}
