package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"mediagrab/internal/httputil"
	"mediagrab/internal/media"
)

// YouTube runs the signed snapany API flow.
func (c *Client) YouTube(ctx context.Context, videoURL string) media.Envelope[media.YouTube] {
	res, err := c.youtube(ctx, videoURL)
	if err != nil {
		return media.Fail[media.YouTube](c.creator, err)
	}
	return media.Succeed(c.creator, *res)
}

func (c *Client) youtube(ctx context.Context, videoURL string) (*media.YouTube, error) {
	ts := timestamp(c.now())
	payload, err := json.Marshal(map[string]string{"link": videoURL})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	resp, err := c.do(ctx, "snapany", httputil.Request{
		Method: http.MethodPost,
		URL:    c.endpoints.SnapAny,
		Header: httputil.Headers(
			"User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"g-footer", c.signer.Sign(ts, videoURL),
			"g-timestamp", ts,
			"Accept", "*/*",
			"Accept-Language", "en",
			"Content-Type", "application/json",
			"Priority", "u=1, i",
			"sec-ch-ua", `"Microsoft Edge";v="137", "Chromium";v="137", "Not/A)Brand";v="24"`,
			"sec-ch-ua-mobile", "?0",
			"sec-ch-ua-platform", `"Windows"`,
			"sec-fetch-dest", "empty",
			"sec-fetch-mode", "cors",
			"sec-fetch-site", "same-site",
			"Referer", "https://snapany.com/",
			"Referrer-Policy", "strict-origin-when-cross-origin",
		),
		Body: bytes.NewReader(payload),
	})
	if err != nil {
		return nil, err
	}
	return parseYouTube(resp.Body)
}

func parseYouTube(body []byte) (*media.YouTube, error) {
	data := gjson.ParseBytes(body)

	var videoMedia, audioMedia gjson.Result
	data.Get("medias").ForEach(func(_, m gjson.Result) bool {
		switch m.Get("media_type").String() {
		case "video":
			if !videoMedia.Exists() {
				videoMedia = m
			}
		case "audio":
			if !audioMedia.Exists() {
				audioMedia = m
			}
		}
		return true
	})
	if !videoMedia.Exists() && !audioMedia.Exists() {
		return nil, ErrYouTubeMedia
	}

	res := &media.YouTube{
		Title:         data.Get("text").String(),
		Thumbnail:     optional(videoMedia.Get("preview_url").String()),
		DownloadLinks: map[string]string{},
		Video:         optional(videoMedia.Get("resource_url").String()),
		Audio:         optional(audioMedia.Get("resource_url").String()),
		Formats:       []media.YouTubeFormat{},
	}
	videoMedia.Get("formats").ForEach(func(_, f gjson.Result) bool {
		format := media.YouTubeFormat{
			Quality:   f.Get("quality").String(),
			VideoURL:  f.Get("video_url").String(),
			Extension: f.Get("video_ext").String(),
			Size:      f.Get("video_size").Int(),
		}
		res.DownloadLinks[format.Quality+"p"] = format.VideoURL
		res.Formats = append(res.Formats, format)
		return true
	})
	return res, nil
}

// optional maps "" to nil so absent URLs encode as JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
