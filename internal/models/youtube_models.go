package models

// Wire shapes for the two YouTube Data API v3 endpoints we consume. Only
// the fields we read are declared; the rest of the payload is ignored.

type YouTubeSearchResponse struct {
	Items []YouTubeSearchItem `json:"items"`
}

type YouTubeSearchItem struct {
	ID YouTubeSearchItemID `json:"id"`
}

type YouTubeSearchItemID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

type YouTubeCommentThreadsResponse struct {
	Items []YouTubeCommentThread `json:"items"`
}

type YouTubeCommentThread struct {
	Snippet YouTubeCommentThreadSnippet `json:"snippet"`
}

type YouTubeCommentThreadSnippet struct {
	TopLevelComment YouTubeComment `json:"topLevelComment"`
}

type YouTubeComment struct {
	Snippet YouTubeCommentSnippet `json:"snippet"`
}

type YouTubeCommentSnippet struct {
	TextOriginal string `json:"textOriginal"`
	PublishedAt  string `json:"publishedAt"`
}

// YouTubeErrorResponse is the envelope the API wraps non-2xx responses in.
// The reason string distinguishes commentsDisabled from real failures.
type YouTubeErrorResponse struct {
	Error YouTubeErrorBody `json:"error"`
}

type YouTubeErrorBody struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Errors  []YouTubeErrorDetail `json:"errors"`
}

type YouTubeErrorDetail struct {
	Reason string `json:"reason"`
}
