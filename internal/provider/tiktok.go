package provider

import (
	"context"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
	"mediagrab/internal/scrape"
)

// ssstikToken is the static session token the ssstik form expects.
const ssstikToken = "WmNzZDk_"

// videoCandidates resolves the watermark-free video link, plain link first.
var videoCandidates = []scrape.Candidate{
	{Selector: "a.download_link.without_watermark", Attr: "href"},
	{Selector: "a#hd_download", Attr: "data-directurl"},
	{Selector: "a.download_link.without_watermark_hd", Attr: "data-directurl"},
}

var audioCandidate = scrape.Candidate{Selector: "a.download_link.music", Attr: "href"}

// TikTok runs the legacy single-shot ssstik flow.
func (c *Client) TikTok(ctx context.Context, videoURL string) media.Envelope[media.TikTokBasic] {
	res, err := c.tiktok(ctx, videoURL)
	if err != nil {
		return media.Fail[media.TikTokBasic](c.creator, err)
	}
	return media.Succeed(c.creator, *res)
}

func (c *Client) tiktok(ctx context.Context, videoURL string) (*media.TikTokBasic, error) {
	doc, err := c.fetchSSSTik(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	return parseTikTokBasic(doc.Selection)
}

func parseTikTokBasic(doc *goquery.Selection) (*media.TikTokBasic, error) {
	title := scrape.Text(doc, "p.maintext")
	video := scrape.FirstMatch(doc, videoCandidates...)
	if title == "" || video == "" {
		return nil, ErrTikTokVideo
	}
	return &media.TikTokBasic{
		Title: title,
		Video: video,
		Audio: scrape.FirstMatch(doc, audioCandidate),
	}, nil
}

// TikTokAdvanced runs the ssstik flow with author, stats and carousel
// support.
func (c *Client) TikTokAdvanced(ctx context.Context, videoURL string) media.Envelope[media.TikTokAdvanced] {
	res, err := c.tiktokAdvanced(ctx, videoURL)
	if err != nil {
		return media.Fail[media.TikTokAdvanced](c.creator, err)
	}
	return media.Succeed(c.creator, *res)
}

func (c *Client) tiktokAdvanced(ctx context.Context, videoURL string) (*media.TikTokAdvanced, error) {
	doc, err := c.fetchSSSTik(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	return parseTikTokAdvanced(doc.Selection)
}

func parseTikTokAdvanced(doc *goquery.Selection) (*media.TikTokAdvanced, error) {
	res := &media.TikTokAdvanced{
		Author:  scrape.Text(doc, "h2"),
		Avatar:  scrape.Attr(doc, "img.result_author", "src"),
		Caption: scrape.Text(doc, "p.maintext"),
		Stats: media.Stats{
			Likes:    counter(doc, "feather-thumbs-up"),
			Comments: counter(doc, "feather-message-square"),
			Shares:   counter(doc, "feather-share-2"),
		},
		AudioDownloadURL: scrape.FirstMatch(doc, audioCandidate),
	}

	slides := doc.Find("li.splide__slide")
	if slides.Length() > 0 {
		slides.Each(func(_ int, s *goquery.Selection) {
			if href := scrape.Attr(s, "a.download_link.slide", "href"); href != "" {
				res.Images = append(res.Images, href)
			}
		})
		if len(res.Images) == 0 {
			return nil, ErrCarouselSlides
		}
		res.Type = media.PostImages
		return res, nil
	}

	res.Type = media.PostVideo
	res.VideoDownloadURL = scrape.FirstMatch(doc, videoCandidates...)
	if res.Author == "" || res.Caption == "" || res.VideoDownloadURL == "" {
		return nil, ErrTikTokData
	}
	return res, nil
}

// counter reads the stat next to the feather icon with the given class.
func counter(doc *goquery.Selection, icon string) int64 {
	return scrape.ParseAbbreviatedCount(scrape.ChildText(doc, "svg."+icon, "div.d-flex", 1))
}

func (c *Client) fetchSSSTik(ctx context.Context, videoURL string) (*goquery.Document, error) {
	return c.fetchDocument(ctx, "ssstik", httputil.Request{
		Method: http.MethodPost,
		URL:    c.endpoints.SSSTik,
		Header: httputil.Headers(
			"Content-Type", "application/x-www-form-urlencoded",
			"sec-ch-ua", `" Not;A Brand";v="99", "Google Chrome";v="91", "Chromium";v="91"`,
			"User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		),
		Body: form(url.Values{
			"id":     {videoURL},
			"locale": {"en"},
			"tt":     {ssstikToken},
		}),
	})
}
