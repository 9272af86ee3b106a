package heat

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
)

// ErrMissingTimestamp is returned when a record without a date-time reaches
// time grouping
var ErrMissingTimestamp = errors.New("record has no timestamp")

// TimestampLayout formats bucket keys. Keys are rendered in UTC so equal
// instants always share a key.
const TimestampLayout = time.RFC3339Nano

// GroupByTime orders records by timestamp (stable) and yields one bucket per
// run of equal timestamps, in ascending order. Bucket samples are the
// flattened records of the run, in run order.
//
// The returned sequence is single-use: once drained, ranging over it again
// yields nothing. A geometry error is yielded once and ends the sequence.
func GroupByTime(records []models.GeometryRecord) (iter.Seq2[models.TimeBucket, error], error) {
	for i, r := range records {
		if !r.HasTimestamp() {
			return nil, fmt.Errorf("%w: record %d (trip %s)", ErrMissingTimestamp, i, r.TripID)
		}
	}

	sorted := make([]models.GeometryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(*sorted[j].Timestamp)
	})

	next := 0
	return func(yield func(models.TimeBucket, error) bool) {
		for next < len(sorted) {
			start := next
			ts := *sorted[start].Timestamp
			end := start + 1
			for end < len(sorted) && sorted[end].Timestamp.Equal(ts) {
				end++
			}
			next = end

			bucket := models.TimeBucket{TimestampKey: ts.UTC().Format(TimestampLayout)}
			for _, r := range sorted[start:end] {
				s, err := Flatten(r)
				if err != nil {
					next = len(sorted)
					yield(models.TimeBucket{}, err)
					return
				}
				bucket.Samples = append(bucket.Samples, s...)
			}

			if !yield(bucket, nil) {
				return
			}
		}
	}, nil
}

// CollectTimeline drains a GroupByTime sequence into a slice
func CollectTimeline(records []models.GeometryRecord) ([]models.TimeBucket, error) {
	seq, err := GroupByTime(records)
	if err != nil {
		return nil, err
	}

	buckets := make([]models.TimeBucket, 0)
	for bucket, err := range seq {
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}
