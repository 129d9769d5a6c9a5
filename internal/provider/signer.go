package provider

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"
)

// Signer computes the g-footer header the YouTube API checks. It must be
// deterministic: the same timestamp and URL always give the same footer.
type Signer interface {
	Sign(timestamp, url string) string
}

// SignerFunc adapts a function to Signer.
type SignerFunc func(timestamp, url string) string

func (f SignerFunc) Sign(timestamp, url string) string { return f(timestamp, url) }

// MD5Signer hashes url, locale, timestamp and secret, in that order, and
// returns the lowercase hex digest.
type MD5Signer struct {
	Locale string
	Secret string
}

func (s MD5Signer) Sign(timestamp, url string) string {
	sum := md5.Sum([]byte(url + s.Locale + timestamp + s.Secret))
	return hex.EncodeToString(sum[:])
}

// DefaultSigner matches the snapany web client.
var DefaultSigner Signer = MD5Signer{Locale: "en", Secret: "6HTugjCXxR"}

// timestamp renders t the way the API expects it: Unix milliseconds.
func timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
