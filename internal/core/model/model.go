package model

// Mode selects which pipeline variant a document was composed for.
type Mode string

const (
	ModeVideo  Mode = "video"
	ModeColumn Mode = "column"
)

// Video is one row of the cached search-result table.
type Video struct {
	ID          string `json:"videoId"`
	Title       string `json:"title"`
	ViewCount   uint64 `json:"viewCount"`
	LikeCount   uint64 `json:"likeCount"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Section is one outline entry. Video outlines fill Points, column articles
// fill Body.
type Section struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points,omitempty"`
	Body    string   `json:"body_text,omitempty"`
}

// Document is the normalized composed outline or article. Every field except
// Sections is optional in the model output and defaults to its zero value;
// Sections is never nil.
type Document struct {
	Title         string    `json:"title"`
	Summary       string    `json:"summary,omitempty"`
	Category      string    `json:"category,omitempty"`
	Hashtags      []string  `json:"hashtags,omitempty"`
	Keywords      []string  `json:"keywords,omitempty"`
	ThumbnailText string    `json:"thumbnail_text,omitempty"`
	Sections      []Section `json:"sections"`
}
