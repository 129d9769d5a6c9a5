// Package media defines the normalized result shapes shared by every
// provider extractor and the envelope they are returned in.
package media

// Kind classifies a downloadable asset.
type Kind string

const (
	Video Kind = "video"
	Image Kind = "image"
	Audio Kind = "audio"
)

// Variant is one downloadable asset.
type Variant struct {
	Kind     Kind   `json:"type"`
	URL      string `json:"url"`
	Quality  string `json:"quality,omitempty"`
	FileSize string `json:"fileSize,omitempty"`
	Preview  string `json:"preview,omitempty"`
}

// Stats holds engagement counters. Absent or unparsable counters are 0.
type Stats struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Views    int64 `json:"views"`
}

// PostType tells a TikTok video post apart from a photo carousel.
type PostType string

const (
	PostVideo  PostType = "video"
	PostImages PostType = "images"
)

// TikTokBasic is the legacy single-shot TikTok result.
type TikTokBasic struct {
	Title string `json:"title"`
	Video string `json:"video"`
	Audio string `json:"audio"`
}

// TikTokAdvanced is the selector-rich TikTok result. Images is set for
// carousels, VideoDownloadURL for videos.
type TikTokAdvanced struct {
	Author           string   `json:"author"`
	Caption          string   `json:"caption"`
	Avatar           string   `json:"avatar"`
	Stats                     // likes, comments, shares
	Type             PostType `json:"type"`
	Images           []string `json:"images,omitempty"`
	VideoDownloadURL string   `json:"videoDownloadUrl,omitempty"`
	AudioDownloadURL string   `json:"audioDownloadUrl"`
}

// TikTokV2 is the result of the JSON proxy flow.
type TikTokV2 struct {
	Author     string    `json:"author"`
	Username   string    `json:"username"`
	Caption    string    `json:"caption"`
	Avatar     string    `json:"avatar"`
	Stats                // likes, comments, shares, views
	PreviewURL string    `json:"previewUrl"`
	MediaItems []Variant `json:"mediaItems"`
}

// Facebook is the fdown result.
type Facebook struct {
	Thumbnail string `json:"thumbnail"`
	VideoURL  string `json:"videoUrl"`
}

// YouTubeFormat is one entry of the video formats list.
type YouTubeFormat struct {
	Quality   string `json:"quality"`
	VideoURL  string `json:"video_url"`
	Extension string `json:"video_ext,omitempty"`
	Size      int64  `json:"video_size,omitempty"`
}

// YouTube is the signed API result. Pointer fields are null when the
// upstream did not list the matching media entry.
type YouTube struct {
	Title         string            `json:"title"`
	Thumbnail     *string           `json:"thumbnail"`
	DownloadLinks map[string]string `json:"downloadLinks"`
	Video         *string           `json:"video"`
	Audio         *string           `json:"audio"`
	Formats       []YouTubeFormat   `json:"formats"`
}

// YouTubeAudio is the result of the three-hop conversion flow.
type YouTubeAudio struct {
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
	ViewCount   int64  `json:"viewCount"`
	Size        string `json:"size"`
	DownloadURL string `json:"downloadUrl"`
}

// File is the generic file host result.
type File struct {
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Download string `json:"download"`
}
