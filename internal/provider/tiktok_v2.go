package provider

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
	"mediagrab/internal/scrape"
)

// tikdownHeaders are sent on the proxy call and on every per-item fetch.
func tikdownHeaders() http.Header {
	return httputil.Headers(
		"Accept", "*/*",
		"Accept-Language", "en-US,en;q=0.9,ar;q=0.8,id;q=0.7,vi;q=0.6",
		"Content-Type", "application/x-www-form-urlencoded; charset=UTF-8",
		"Priority", "u=1, i",
		"Referer", "https://tikdown.com/en",
		"sec-ch-ua", `"Chromium";v="142", "Microsoft Edge";v="142", "Not_A Brand";v="99"`,
		"sec-ch-ua-mobile", "?0",
		"sec-ch-ua-platform", `"Windows"`,
		"sec-fetch-dest", "empty",
		"sec-fetch-mode", "cors",
		"sec-fetch-site", "same-origin",
		"X-Requested-With", "XMLHttpRequest",
	)
}

// rawItem is a mediaItems entry before enrichment.
type rawItem struct {
	kind     string // Video, Image or Music
	url      string
	quality  string
	fileSize string
}

// TikTokV2 runs the tikdown JSON proxy flow. Video and music items are
// resolved with one extra GET each; a failed resolve keeps the
// provisional URL instead of failing the call.
func (c *Client) TikTokV2(ctx context.Context, videoURL string) media.Envelope[media.TikTokV2] {
	res, err := c.tiktokV2(ctx, videoURL)
	if err != nil {
		return media.Fail[media.TikTokV2](c.creator, err)
	}
	return media.Succeed(c.creator, *res)
}

func (c *Client) tiktokV2(ctx context.Context, videoURL string) (*media.TikTokV2, error) {
	resp, err := c.do(ctx, "tikdown", httputil.Request{
		Method: http.MethodPost,
		URL:    c.endpoints.TikDown,
		Header: tikdownHeaders(),
		Body:   form(url.Values{"url": {videoURL}}),
	})
	if err != nil {
		return nil, err
	}

	api := gjson.GetBytes(resp.Body, "api")
	if !api.IsObject() || api.Get("status").String() != "OK" {
		return nil, ErrTikTokV2Status
	}

	stats := api.Get("mediaStats")
	user := api.Get("userInfo")

	var raw []rawItem
	api.Get("mediaItems").ForEach(func(_, item gjson.Result) bool {
		kind := item.Get("type").String()
		if kind == "" {
			kind = "Video"
		}
		raw = append(raw, rawItem{
			kind:     kind,
			url:      item.Get("mediaUrl").String(),
			quality:  item.Get("mediaQuality").String(),
			fileSize: item.Get("mediaFileSize").String(),
		})
		return true
	})

	return &media.TikTokV2{
		Author:   firstNonEmpty(user.Get("name").String(), api.Get("title").String()),
		Username: user.Get("username").String(),
		Caption:  api.Get("description").String(),
		Avatar:   user.Get("userAvatar").String(),
		Stats: media.Stats{
			Likes:    statCount(stats.Get("likesCount")),
			Comments: statCount(stats.Get("commentsCount")),
			Shares:   statCount(stats.Get("sharesCount")),
			Views:    statCount(stats.Get("viewsCount")),
		},
		PreviewURL: firstNonEmpty(api.Get("previewUrl").String(), api.Get("imagePreviewUrl").String()),
		MediaItems: c.resolveItems(ctx, raw),
	}, nil
}

// resolveItems enriches every item concurrently. The output keeps the
// input order.
func (c *Client) resolveItems(ctx context.Context, raw []rawItem) []media.Variant {
	items := make([]media.Variant, len(raw))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, item := range raw {
		g.Go(func() error {
			items[i] = c.resolveItem(ctx, i, item)
			return nil
		})
	}
	_ = g.Wait()
	return items
}

func (c *Client) resolveItem(ctx context.Context, index int, item rawItem) media.Variant {
	v := media.Variant{
		Kind:     itemKind(item.kind),
		URL:      item.url,
		Quality:  item.quality,
		FileSize: item.fileSize,
	}
	if item.kind != "Video" && item.kind != "Music" {
		return v
	}

	resp, err := c.do(ctx, "tikdown item", httputil.Request{
		Method: http.MethodGet,
		URL:    item.url,
		Header: tikdownHeaders(),
	})
	if err != nil {
		c.log.Debug().Err(err).Int("item", index).Msg("item resolve failed, keeping provisional URL")
		return v
	}

	file := gjson.ParseBytes(resp.Body)
	if u := file.Get("fileUrl").String(); u != "" {
		v.URL = u
	}
	if v.Quality == "" {
		v.Quality = file.Get("quality").String()
	}
	if v.FileSize == "" {
		v.FileSize = file.Get("fileSize").String()
	}
	return v
}

func itemKind(kind string) media.Kind {
	switch kind {
	case "Image":
		return media.Image
	case "Music":
		return media.Audio
	default:
		return media.Video
	}
}

// statCount passes numeric counters through and parses string ones with
// the strip policy ("5.1K" is 5).
func statCount(r gjson.Result) int64 {
	switch r.Type {
	case gjson.Number:
		return scrape.FloatCount(r.Num)
	case gjson.String:
		return scrape.ParseStrippedCount(r.Str)
	default:
		return 0
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
