package provider

// Error is a shape error: the upstream answered but a required signal was
// missing from its payload. Message is what ends up in the envelope.
type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	ErrTikTokVideo      = &Error{Message: "failed to extract video or title from response"}
	ErrTikTokData       = &Error{Message: "failed to extract required TikTok data from response"}
	ErrCarouselSlides   = &Error{Message: "failed to extract carousel slides from response"}
	ErrTikTokV2Status   = &Error{Message: "failed to retrieve TikTok data from the response"}
	ErrFacebookMedia    = &Error{Message: "no video or image found in the response"}
	ErrInstagramMedia   = &Error{Message: "no media items found in the response"}
	ErrYouTubeMedia     = &Error{Message: "no media found in the response"}
	ErrConversion       = &Error{Message: "failed to fetch video data"}
	ErrConversionSlug   = &Error{Message: "conversion response has no result slug"}
	ErrDownloadLink     = &Error{Message: "download link not found on page"}
	ErrUnsupportedURL   = &Error{Message: "no extractor supports this URL"}
	ErrUnknownExtractor = &Error{Message: "unknown extractor"}
)
