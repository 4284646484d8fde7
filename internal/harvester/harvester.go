// Package harvester drives the pipeline: partition the requested date
// range, discover videos per interval, fetch comment threads per video,
// and stream every record to the output file.
package harvester

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/commentharvest/config"
	"github.com/spacesedan/commentharvest/internal/intervals"
	"github.com/spacesedan/commentharvest/internal/models"
	"github.com/spacesedan/commentharvest/internal/output"
	"github.com/spacesedan/commentharvest/internal/timeutils"
)

// VideoSearcher discovers video IDs published inside one interval.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, window intervals.Interval, query string) ([]string, error)
}

// CommentSource fetches top-level comment records for one video.
type CommentSource interface {
	FetchCommentThreads(ctx context.Context, videoID string) ([]models.CommentRecord, error)
}

type Harvester struct {
	cfg      config.Config
	searcher VideoSearcher
	comments CommentSource
}

func New(cfg config.Config, searcher VideoSearcher, comments CommentSource) *Harvester {
	return &Harvester{
		cfg:      cfg,
		searcher: searcher,
		comments: comments,
	}
}

// Run executes one harvest. Intervals run sequentially and records stream
// to the sink as they arrive, so a failed run leaves everything fetched up
// to that point on disk. The first failing request aborts the run.
func (h *Harvester) Run(ctx context.Context, dateRange intervals.DateRange, query string) (total int, err error) {
	sink, err := output.NewTSVWriter(h.cfg.OutputFile)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	slog.Info("[Harvester] Starting run",
		slog.String("from", dateRange.Start.Format(timeutils.DATE_LAYOUT)),
		slog.String("to", dateRange.End.Format(timeutils.DATE_LAYOUT)),
		slog.String("query", query),
		slog.String("output", h.cfg.OutputFile))

	for window := range intervals.Partition(dateRange, h.cfg.MaxSpanDays) {
		if err = ctx.Err(); err != nil {
			return total, err
		}

		slog.Info("[Harvester] Searching interval",
			slog.String("from", window.Start.Format(timeutils.DATE_LAYOUT)),
			slog.String("to", window.End.Format(timeutils.DATE_LAYOUT)))

		videoIDs, serr := h.searcher.SearchVideos(ctx, window, query)
		if serr != nil {
			return total, fmt.Errorf("interval %s..%s: %w",
				window.Start.Format(timeutils.DATE_LAYOUT),
				window.End.Format(timeutils.DATE_LAYOUT), serr)
		}

		slog.Info("[Harvester] Videos found", slog.Int("count", len(videoIDs)))

		for _, videoID := range videoIDs {
			records, ferr := h.comments.FetchCommentThreads(ctx, videoID)
			if ferr != nil {
				return total, ferr
			}

			for _, record := range records {
				if werr := sink.WriteRecord(record); werr != nil {
					return total, werr
				}
				total++
			}
		}

		slog.Info("[Harvester] Interval done", slog.Int("records_so_far", total))
	}

	slog.Info("[Harvester] Run complete", slog.Int("records", total))
	return total, nil
}
