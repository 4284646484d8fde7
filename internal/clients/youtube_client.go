package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/spacesedan/commentharvest/internal/intervals"
	"github.com/spacesedan/commentharvest/internal/models"
	"github.com/spacesedan/commentharvest/internal/timeutils"
)

const (
	YOUTUBE_SEARCH_URL   = "https://www.googleapis.com/youtube/v3/search"
	YOUTUBE_COMMENTS_URL = "https://www.googleapis.com/youtube/v3/commentThreads"
)

var (
	ErrDiscoveryRequest  = errors.New("video discovery request failed")
	ErrCommentRequest    = errors.New("comment threads request failed")
	ErrMalformedResponse = errors.New("malformed API response")
)

// YouTubeClient issues the two Data API v3 calls the harvester needs.
// A shared limiter paces requests so a long run stays inside quota.
type YouTubeClient struct {
	Client *http.Client
	APIKey string

	relevanceLanguage string
	limiter           *rate.Limiter

	searchURL   string
	commentsURL string
}

func NewYouTubeClient(apiKey, relevanceLanguage string) *YouTubeClient {
	return &YouTubeClient{
		Client:            &http.Client{Timeout: 30 * time.Second},
		APIKey:            apiKey,
		relevanceLanguage: relevanceLanguage,
		limiter:           rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		searchURL:         YOUTUBE_SEARCH_URL,
		commentsURL:       YOUTUBE_COMMENTS_URL,
	}
}

// SearchVideos runs one search call for the interval and returns matching
// video IDs in response order. The publish window is the interval's local
// midnights converted to UTC; note the upper bound is midnight ON the end
// date, not end-of-day, so each interval's last day is only covered by the
// raw date span, not the instant window. Only the first 50 results are
// fetched; there is no pagination.
func (yt *YouTubeClient) SearchVideos(ctx context.Context, window intervals.Interval, query string) ([]string, error) {
	u, err := url.Parse(yt.searchURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscoveryRequest, err)
	}
	q := u.Query()
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(SEARCH_PAGE_SIZE))
	q.Set("order", "viewCount")
	q.Set("publishedAfter", timeutils.FormatUTCInstant(window.Start))
	q.Set("publishedBefore", timeutils.FormatUTCInstant(window.End))
	q.Set("relevanceLanguage", yt.relevanceLanguage)
	q.Set("q", query)
	q.Set("key", yt.APIKey)
	u.RawQuery = q.Encode()

	body, err := yt.doWithRetry(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscoveryRequest, err)
	}

	return parseSearchResponse(body)
}

// FetchCommentThreads runs one commentThreads call for the video and
// returns up to 100 normalized records ordered by relevance. A video with
// comments disabled yields an empty slice, matching a video with none.
func (yt *YouTubeClient) FetchCommentThreads(ctx context.Context, videoID string) ([]models.CommentRecord, error) {
	u, err := url.Parse(yt.commentsURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommentRequest, err)
	}
	q := u.Query()
	q.Set("part", "snippet")
	q.Set("maxResults", strconv.Itoa(COMMENTS_PAGE_SIZE))
	q.Set("order", "relevance")
	q.Set("textFormat", "plainText")
	q.Set("videoId", videoID)
	q.Set("key", yt.APIKey)
	u.RawQuery = q.Encode()

	body, err := yt.doWithRetry(ctx, u.String())
	if err != nil {
		if errors.Is(err, errCommentsDisabled) {
			slog.Warn("[YouTubeClient] Comments unavailable for video, skipping",
				slog.String("video_id", videoID))
			return nil, nil
		}
		return nil, fmt.Errorf("%w: video %s: %v", ErrCommentRequest, videoID, err)
	}

	return parseCommentThreadsResponse(body)
}

var errCommentsDisabled = errors.New("comments disabled")

// doWithRetry performs one GET with retries on 429/5xx and transport
// failures, backing off exponentially up to MAX_BACKOFF.
func (yt *YouTubeClient) doWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	var lastErr error
	backoff := INITIAL_BACKOFF

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		if err := yt.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", USER_AGENT)

		res, err := yt.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("[YouTubeClient] Request failed, retrying",
				slog.Int("attempt", attempt), slog.String("error", err.Error()))
			lastErr = err
		} else {
			body, rerr := io.ReadAll(res.Body)
			res.Body.Close()
			if rerr != nil {
				return nil, rerr
			}

			switch {
			case res.StatusCode == http.StatusOK:
				return body, nil
			case res.StatusCode == http.StatusForbidden && errorReason(body) == "commentsDisabled":
				return nil, errCommentsDisabled
			case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
				slog.Warn("[YouTubeClient] Retryable status, backing off",
					slog.Int("status", res.StatusCode),
					slog.Duration("backoff", backoff), slog.Int("attempt", attempt))
				lastErr = fmt.Errorf("status %d: %s", res.StatusCode, errorMessage(body))
			default:
				return nil, fmt.Errorf("status %d: %s", res.StatusCode, errorMessage(body))
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return nil, fmt.Errorf("max retries reached: %w", lastErr)
}

// parseSearchResponse extracts video IDs in order. Items without a videoId
// (channels, playlists, partial items) are skipped rather than treated as
// a hard failure.
func parseSearchResponse(body []byte) ([]string, error) {
	var response models.YouTubeSearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var videoIDs []string
	for _, item := range response.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videoIDs = append(videoIDs, item.ID.VideoID)
	}
	return videoIDs, nil
}

func parseCommentThreadsResponse(body []byte) ([]models.CommentRecord, error) {
	var response models.YouTubeCommentThreadsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var records []models.CommentRecord
	for _, thread := range response.Items {
		snippet := thread.Snippet.TopLevelComment.Snippet
		records = append(records, models.CommentRecord{
			Platform: models.PLATFORM_YOUTUBE,
			PostedAt: snippet.PublishedAt,
			Comment:  snippet.TextOriginal,
		})
	}
	return records, nil
}

func errorReason(body []byte) string {
	var response models.YouTubeErrorResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return ""
	}
	if len(response.Error.Errors) == 0 {
		return ""
	}
	return response.Error.Errors[0].Reason
}

func errorMessage(body []byte) string {
	var response models.YouTubeErrorResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Error.Message == "" {
		return "unexpected response"
	}
	return response.Error.Message
}
