package provider

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
	"mediagrab/internal/scrape"
)

// Instagram runs the snapinsta flow. Posts with several media yield one
// variant per item, in page order.
func (c *Client) Instagram(ctx context.Context, postURL string) media.Envelope[[]media.Variant] {
	res, err := c.instagram(ctx, postURL)
	if err != nil {
		return media.Fail[[]media.Variant](c.creator, err)
	}
	return media.Succeed(c.creator, res)
}

func (c *Client) instagram(ctx context.Context, postURL string) ([]media.Variant, error) {
	doc, err := c.fetchDocument(ctx, "snapinsta", httputil.Request{
		Method: http.MethodPost,
		URL:    c.endpoints.SnapInsta,
		Header: httputil.Headers(
			"Accept", "*/*",
			"Accept-Language", "en-US,en;q=0.9,ar;q=0.8,id;q=0.7,vi;q=0.6",
			"Content-Type", "application/x-www-form-urlencoded",
			"Priority", "u=1, i",
			"sec-ch-ua", `"Not)A;Brand";v="8", "Chromium";v="138", "Microsoft Edge";v="138"`,
			"sec-ch-ua-mobile", "?0",
			"sec-ch-ua-platform", `"Windows"`,
			"sec-fetch-dest", "empty",
			"sec-fetch-mode", "cors",
			"sec-fetch-site", "same-origin",
		),
		Body: form(url.Values{"url": {postURL}}),
	})
	if err != nil {
		return nil, err
	}

	items := parseInstagramItems(doc.Selection)
	if len(items) == 0 {
		return nil, ErrInstagramMedia
	}
	return items, nil
}

func parseInstagramItems(doc *goquery.Selection) []media.Variant {
	var items []media.Variant
	doc.Find(".download-item").Each(func(_ int, s *goquery.Selection) {
		href := scrape.Attr(s, ".download-media", "href")
		if href == "" {
			return
		}
		kind := media.Image
		label := strings.ToLower(scrape.Text(s, ".download-media"))
		if strings.Contains(label, "video") || s.Find(".icon-downvid").Length() > 0 {
			kind = media.Video
		}
		items = append(items, media.Variant{
			Kind:    kind,
			URL:     href,
			Preview: scrape.Attr(s, ".media-box img", "src"),
		})
	})
	return items
}
