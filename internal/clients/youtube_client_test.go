package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/commentharvest/internal/intervals"
)

const sampleSearchJSON = `{
	"items": [
		{"id": {"kind": "youtube#video", "videoId": "v1"}},
		{"id": {"kind": "youtube#channel"}},
		{"id": {"kind": "youtube#video", "videoId": "v2"}},
		{"id": {"kind": "youtube#video"}}
	]
}`

const sampleCommentThreadsJSON = `{
	"items": [
		{"snippet": {"topLevelComment": {"snippet": {
			"textOriginal": "hello",
			"publishedAt": "2024-06-02T10:15:00Z"
		}}}},
		{"snippet": {"topLevelComment": {"snippet": {
			"textOriginal": "world",
			"publishedAt": "2024-06-03T08:00:00Z"
		}}}}
	]
}`

func testInterval(t *testing.T) intervals.Interval {
	t.Helper()
	return intervals.Interval{
		Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestParseSearchResponse(t *testing.T) {
	videoIDs, err := parseSearchResponse([]byte(sampleSearchJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Items without a videoId are skipped, order preserved.
	if len(videoIDs) != 2 || videoIDs[0] != "v1" || videoIDs[1] != "v2" {
		t.Errorf("videoIDs = %v, want [v1 v2]", videoIDs)
	}

	if _, err := parseSearchResponse([]byte("not json")); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestParseCommentThreadsResponse(t *testing.T) {
	records, err := parseCommentThreadsResponse([]byte(sampleCommentThreadsJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Platform != "YouTube" || records[0].PostedAt != "2024-06-02T10:15:00Z" || records[0].Comment != "hello" {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].Comment != "world" {
		t.Errorf("record 1 = %+v", records[1])
	}

	empty, err := parseCommentThreadsResponse([]byte(`{"items": []}`))
	if err != nil {
		t.Fatalf("unexpected error for empty items: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d records for empty items, want 0", len(empty))
	}
}

func TestSearchVideosBuildsWindow(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(sampleSearchJSON))
	}))
	defer server.Close()

	yt := NewYouTubeClient("test-key", "en")
	yt.searchURL = server.URL

	videoIDs, err := yt.SearchVideos(context.Background(), testInterval(t), "cats -dogs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videoIDs) != 2 {
		t.Fatalf("got %d video IDs, want 2", len(videoIDs))
	}

	want := map[string]string{
		"part":              "snippet",
		"type":              "video",
		"maxResults":        "50",
		"order":             "viewCount",
		"publishedAfter":    "2024-06-01T00:00:00Z",
		"publishedBefore":   "2024-06-03T00:00:00Z",
		"relevanceLanguage": "en",
		"q":                 "cats -dogs",
		"key":               "test-key",
	}
	for key, wantValue := range want {
		if gotQuery[key] != wantValue {
			t.Errorf("param %s = %q, want %q", key, gotQuery[key], wantValue)
		}
	}
}

func TestSearchVideosRequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid publishedAfter"}}`))
	}))
	defer server.Close()

	yt := NewYouTubeClient("test-key", "en")
	yt.searchURL = server.URL

	_, err := yt.SearchVideos(context.Background(), testInterval(t), "cats")
	if !errors.Is(err, ErrDiscoveryRequest) {
		t.Errorf("error = %v, want ErrDiscoveryRequest", err)
	}
}

func TestFetchCommentThreads(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(sampleCommentThreadsJSON))
	}))
	defer server.Close()

	yt := NewYouTubeClient("test-key", "en")
	yt.commentsURL = server.URL

	records, err := yt.FetchCommentThreads(context.Background(), "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if gotQuery["videoId"] != "v1" || gotQuery["maxResults"] != "100" || gotQuery["order"] != "relevance" {
		t.Errorf("unexpected query params: %v", gotQuery)
	}
}

func TestFetchCommentThreadsDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "disabled comments",
			"errors": [{"reason": "commentsDisabled"}]}}`))
	}))
	defer server.Close()

	yt := NewYouTubeClient("test-key", "en")
	yt.commentsURL = server.URL

	records, err := yt.FetchCommentThreads(context.Background(), "v1")
	if err != nil {
		t.Fatalf("disabled comments should not error, got: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestFetchCommentThreadsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded",
			"errors": [{"reason": "quotaExceeded"}]}}`))
	}))
	defer server.Close()

	yt := NewYouTubeClient("test-key", "en")
	yt.commentsURL = server.URL

	_, err := yt.FetchCommentThreads(context.Background(), "v1")
	if !errors.Is(err, ErrCommentRequest) {
		t.Errorf("error = %v, want ErrCommentRequest", err)
	}
}

func TestDoWithRetryRecovers(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleSearchJSON))
	}))
	defer server.Close()

	yt := NewYouTubeClient("test-key", "en")
	yt.searchURL = server.URL

	videoIDs, err := yt.SearchVideos(context.Background(), testInterval(t), "cats")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("server saw %d attempts, want 2", attempts)
	}
	if len(videoIDs) != 2 {
		t.Errorf("got %d video IDs, want 2", len(videoIDs))
	}
}
