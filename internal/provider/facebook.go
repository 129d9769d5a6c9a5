package provider

import (
	"context"
	"net/http"
	"net/url"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
	"mediagrab/internal/scrape"
)

// Facebook runs the fdown flow.
func (c *Client) Facebook(ctx context.Context, videoURL string) media.Envelope[media.Facebook] {
	res, err := c.facebook(ctx, videoURL)
	if err != nil {
		return media.Fail[media.Facebook](c.creator, err)
	}
	return media.Succeed(c.creator, *res)
}

func (c *Client) facebook(ctx context.Context, videoURL string) (*media.Facebook, error) {
	doc, err := c.fetchDocument(ctx, "fdown", httputil.Request{
		Method: http.MethodPost,
		URL:    c.endpoints.FDown,
		Header: httputil.Headers(
			"Content-Type", "application/x-www-form-urlencoded",
			"User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36 Edg/134.0.0.0",
			"Origin", "https://www.fdown.world",
			"Referer", "https://www.fdown.world/",
			"X-Requested-With", "XMLHttpRequest",
			"Cookie", "codehap_domain=www.fdown.world",
		),
		Body: form(url.Values{
			"codehap_link": {videoURL},
			"codehap":      {"true"},
		}),
	})
	if err != nil {
		return nil, err
	}

	videoSrc := scrape.Attr(doc.Selection, "video source", "src")
	imageSrc := scrape.Attr(doc.Selection, "img", "src")
	if videoSrc == "" && imageSrc == "" {
		return nil, ErrFacebookMedia
	}
	return &media.Facebook{Thumbnail: imageSrc, VideoURL: videoSrc}, nil
}
