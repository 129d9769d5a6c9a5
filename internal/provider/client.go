// Package provider implements one extractor per upstream download service.
// Each extractor replays the service's request contract, parses its HTML
// or JSON answer and returns a media.Envelope. Errors never escape an
// extractor; they are folded into a failure envelope.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"mediagrab/internal/httputil"
)

// DefaultCreator tags envelopes when no creator is configured.
const DefaultCreator = "mediagrab"

// DefaultConcurrency bounds the per-item fetches of a single TikTok v2 call.
const DefaultConcurrency = 4

// Endpoints are the upstream URLs each extractor talks to.
type Endpoints struct {
	SSSTik       string `toml:"ssstik"`        // TikTok legacy and advanced
	TikDown      string `toml:"tikdown"`       // TikTok v2 proxy
	FDown        string `toml:"fdown"`         // Facebook
	SnapInsta    string `toml:"snapinsta"`     // Instagram
	SnapAny      string `toml:"snapany"`       // YouTube
	YTConvert    string `toml:"ytconvert"`     // YouTube audio hop 1
	Ryin         string `toml:"ryin"`          // YouTube audio hops 2 and 3
	SfileReferer string `toml:"sfile_referer"` // Referer sent to the file host
}

// DefaultEndpoints returns the production upstream URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		SSSTik:       "https://ssstik.io/abc?url=dl",
		TikDown:      "https://tikdown.com/proxy.php",
		FDown:        "https://www.fdown.world/result.php",
		SnapInsta:    "https://snapinsta.llc/process",
		SnapAny:      "https://api.snapany.com/v1/extract",
		YTConvert:    "https://youtubemp4free.com/wp-admin/admin-ajax.php",
		Ryin:         "https://ryin.info/",
		SfileReferer: "https://sfile.mobi/",
	}
}

// withDefaults fills every empty endpoint from DefaultEndpoints.
func (e Endpoints) withDefaults() Endpoints {
	d := DefaultEndpoints()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Endpoints{
		SSSTik:       pick(e.SSSTik, d.SSSTik),
		TikDown:      pick(e.TikDown, d.TikDown),
		FDown:        pick(e.FDown, d.FDown),
		SnapInsta:    pick(e.SnapInsta, d.SnapInsta),
		SnapAny:      pick(e.SnapAny, d.SnapAny),
		YTConvert:    pick(e.YTConvert, d.YTConvert),
		Ryin:         pick(e.Ryin, d.Ryin),
		SfileReferer: pick(e.SfileReferer, d.SfileReferer),
	}
}

// Options configure a Client. Zero values select defaults.
type Options struct {
	// Creator is stamped on every envelope.
	Creator string
	// HTTPClient performs the round trips. Defaults to httputil.NewClient.
	HTTPClient httputil.Doer
	// Timeout is used only when HTTPClient is nil.
	Timeout time.Duration
	// UserAgent replaces the default for hops that do not pin their own.
	UserAgent string
	Endpoints Endpoints
	// Concurrency bounds parallel per-item fetches in TikTokV2.
	Concurrency int
	// Signer computes the YouTube request footer.
	Signer Signer
	Logger *zerolog.Logger
	// Now and Intn exist so tests can pin timestamps and the sfile k value.
	Now  func() time.Time
	Intn func(n int) int
}

// Client runs extractions. It is immutable after New and safe for
// concurrent use; calls share nothing but its configuration.
type Client struct {
	creator     string
	userAgent   string
	http        httputil.Doer
	endpoints   Endpoints
	concurrency int
	signer      Signer
	log         zerolog.Logger
	now         func() time.Time
	intn        func(n int) int
}

// New creates a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		creator:     opts.Creator,
		userAgent:   opts.UserAgent,
		http:        opts.HTTPClient,
		endpoints:   opts.Endpoints.withDefaults(),
		concurrency: opts.Concurrency,
		signer:      opts.Signer,
		now:         opts.Now,
		intn:        opts.Intn,
	}
	if c.creator == "" {
		c.creator = DefaultCreator
	}
	if c.http == nil {
		c.http = httputil.NewClient(opts.Timeout)
	}
	if c.concurrency <= 0 {
		c.concurrency = DefaultConcurrency
	}
	if c.signer == nil {
		c.signer = DefaultSigner
	}
	if opts.Logger != nil {
		c.log = opts.Logger.With().Str("component", "provider").Logger()
	} else {
		c.log = zerolog.Nop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.intn == nil {
		c.intn = rand.IntN
	}
	return c
}

// Creator returns the tag stamped on every envelope.
func (c *Client) Creator() string { return c.creator }

// do performs one hop.
func (c *Client) do(ctx context.Context, hop string, req httputil.Request) (*httputil.Response, error) {
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header = req.Header.Clone()
		if req.Header == nil {
			req.Header = http.Header{}
		}
		req.Header.Set("User-Agent", c.userAgent)
	}
	c.log.Debug().Str("hop", hop).Str("method", req.Method).Str("url", req.URL).Msg("upstream request")
	resp, err := httputil.Do(ctx, c.http, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hop, err)
	}
	c.log.Debug().Str("hop", hop).Int("status", resp.Status).Int("bytes", len(resp.Body)).Msg("upstream response")
	return resp, nil
}

// fetchDocument performs one hop and parses the answer as HTML.
func (c *Client) fetchDocument(ctx context.Context, hop string, req httputil.Request) (*goquery.Document, error) {
	resp, err := c.do(ctx, hop, req)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("%s: parsing HTML: %w", hop, err)
	}
	return doc, nil
}

// form encodes values as an application/x-www-form-urlencoded body.
func form(values url.Values) io.Reader {
	return strings.NewReader(values.Encode())
}
