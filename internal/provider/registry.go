package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"mediagrab/internal/media"
)

// Extractor describes one extraction flow for callers that pick a flow
// by name or by URL.
type Extractor struct {
	Name        string
	Description string
	// Domains are registrable domains Detect routes to this extractor.
	// Flows without domains are only reachable by name.
	Domains []string
	Run     func(ctx context.Context, c *Client, url string) media.Outcome
}

// Extractors lists every flow. Detect picks the first one claiming a
// domain, so order matters.
var Extractors = []Extractor{
	{
		Name:        "tiktok-advanced",
		Description: "TikTok via ssstik with author, stats and photo carousels",
		Domains:     []string{"tiktok.com"},
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.TikTokAdvanced(ctx, u)
		},
	},
	{
		Name:        "tiktok",
		Description: "TikTok via ssstik, title and links only",
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.TikTok(ctx, u)
		},
	},
	{
		Name:        "tiktok-v2",
		Description: "TikTok via the tikdown JSON proxy",
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.TikTokV2(ctx, u)
		},
	},
	{
		Name:        "facebook",
		Description: "Facebook videos via fdown",
		Domains:     []string{"facebook.com", "fb.watch"},
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.Facebook(ctx, u)
		},
	},
	{
		Name:        "instagram",
		Description: "Instagram posts and reels via snapinsta",
		Domains:     []string{"instagram.com"},
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.Instagram(ctx, u)
		},
	},
	{
		Name:        "youtube",
		Description: "YouTube video and audio formats via snapany",
		Domains:     []string{"youtube.com", "youtu.be"},
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.YouTube(ctx, u)
		},
	},
	{
		Name:        "youtube-audio",
		Description: "YouTube audio conversion via youtubemp4free",
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.YouTubeAudio(ctx, u)
		},
	},
	{
		Name:        "sfile",
		Description: "sfile.mobi file pages",
		Domains:     []string{"sfile.mobi"},
		Run: func(ctx context.Context, c *Client, u string) media.Outcome {
			return c.Sfile(ctx, u)
		},
	},
}

// Lookup returns the extractor registered under name.
func Lookup(name string) (Extractor, error) {
	for _, e := range Extractors {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Extractor{}, fmt.Errorf("%w %q", ErrUnknownExtractor, name)
}

// Detect returns the extractor for rawURL's registrable domain, so
// vm.tiktok.com and www.tiktok.com both resolve through tiktok.com.
func Detect(rawURL string) (Extractor, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Extractor{}, fmt.Errorf("parsing URL: %w", err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Extractor{}, ErrUnsupportedURL
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		domain = host
	}
	for _, e := range Extractors {
		for _, d := range e.Domains {
			if d == domain {
				return e, nil
			}
		}
	}
	return Extractor{}, ErrUnsupportedURL
}
