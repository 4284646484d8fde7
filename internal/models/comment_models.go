package models

const PLATFORM_YOUTUBE = "YouTube"

// CommentRecord is one normalized top-level comment, written as a single
// TSV row. PostedAt is copied verbatim from the platform (UTC, RFC 3339);
// Comment is the original unformatted text.
type CommentRecord struct {
	Platform string `json:"platform"`
	PostedAt string `json:"posted_at"`
	Comment  string `json:"comment"`
}
