package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
	"mediagrab/internal/scrape"
)

// The file host rejects download links without a k parameter in [kMin, kMax].
const (
	kMin = 10
	kMax = 15
)

// Sfile reads the file page itself; no third-party service is involved.
func (c *Client) Sfile(ctx context.Context, pageURL string) media.Envelope[media.File] {
	res, err := c.sfile(ctx, pageURL)
	if err != nil {
		return media.Fail[media.File](c.creator, err)
	}
	return media.Succeed(c.creator, *res)
}

func (c *Client) sfile(ctx context.Context, pageURL string) (*media.File, error) {
	doc, err := c.fetchDocument(ctx, "sfile", httputil.Request{
		Method: http.MethodGet,
		URL:    pageURL,
		Header: httputil.Headers(
			"User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Referer", c.endpoints.SfileReferer,
			"Accept-Language", "en-US,en;q=0.9",
		),
	})
	if err != nil {
		return nil, err
	}

	href := scrape.Attr(doc.Selection, "#download", "href")
	if href == "" {
		return nil, ErrDownloadLink
	}
	k := kMin + c.intn(kMax-kMin+1)
	download, err := httputil.ResolveWithQuery(pageURL, href, "k", strconv.Itoa(k))
	if err != nil {
		return nil, fmt.Errorf("building download link: %w", err)
	}

	return &media.File{
		Filename: scrape.Attr(doc.Selection, ".intro-container img", "alt"),
		Mimetype: parseMimetype(doc.Selection),
		Download: download,
	}, nil
}

// parseMimetype takes the part after the first " - " in the file info
// block, up to the end of that line.
func parseMimetype(doc *goquery.Selection) string {
	parts := strings.Split(doc.Find("div.list").Text(), " - ")
	if len(parts) < 2 {
		return ""
	}
	line, _, _ := strings.Cut(parts[1], "\n")
	return strings.TrimSpace(line)
}
