// Package intervals splits a requested date range into short sub-ranges so
// each search request stays inside the endpoint's 50-result cap.
package intervals

import (
	"iter"
	"time"
)

// DateRange is a caller-supplied inclusive span of calendar dates, both
// bounds anchored at local midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Interval is one sub-span produced by Partition. Inclusive on both ends.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Days reports the interval's span in whole calendar days, inclusive.
func (iv Interval) Days() int {
	return int(iv.End.Sub(iv.Start).Hours()/24) + 1
}

// Partition lazily yields consecutive intervals of at most maxSpanDays
// covering r with no gap and no overlap. The final interval is clamped to
// r.End exactly, so it may be shorter than maxSpanDays. A range whose start
// equals its end yields a single zero-length interval; a range whose end
// precedes its start yields nothing.
func Partition(r DateRange, maxSpanDays int) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if maxSpanDays < 1 {
			return
		}
		for cursor := r.Start; !cursor.After(r.End); cursor = cursor.AddDate(0, 0, maxSpanDays) {
			end := cursor.AddDate(0, 0, maxSpanDays-1)
			if end.After(r.End) {
				end = r.End
			}
			if !yield(Interval{Start: cursor, End: end}) {
				return
			}
		}
	}
}
