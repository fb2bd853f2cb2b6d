// Package histogram buckets completed tasks by the local time of day they
// were completed. The result backs the "Task Completion by Time" chart.
package histogram

import (
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/models"
)

// Bucket is one 3-hour window [From, To) of the day.
type Bucket struct {
	Label string
	From  int
	To    int
	Count int
}

// Result holds the five buckets in fixed order, from 6 AM to 9 PM.
type Result struct {
	Buckets []Bucket
}

// windows are half-open hour ranges; hours outside [6,21) are not counted.
var windows = []Bucket{
	{Label: "6 AM - 9 AM", From: 6, To: 9},
	{Label: "9 AM - 12 PM", From: 9, To: 12},
	{Label: "12 PM - 3 PM", From: 12, To: 15},
	{Label: "3 PM - 6 PM", From: 15, To: 18},
	{Label: "6 PM - 9 PM", From: 18, To: 21},
}

// Labels returns the bucket labels in chart order.
func Labels() []string {
	labels := make([]string, len(windows))
	for i, w := range windows {
		labels[i] = w.Label
	}
	return labels
}

// timestampLayouts are tried in order. Layouts without a zone are read in
// the caller's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp parses a completion timestamp into loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts.In(loc), true
		}
	}
	return time.Time{}, false
}

// Compute counts completed tasks per bucket by the hour of their completion
// time in loc. Tasks that are not completed, whose timestamp does not parse
// or whose hour falls outside the buckets are skipped. A nil loc means
// time.Local.
func Compute(tasks []models.Task, loc *time.Location) Result {
	if loc == nil {
		loc = time.Local
	}

	buckets := make([]Bucket, len(windows))
	copy(buckets, windows)

	for _, t := range tasks {
		if !t.IsCompleted() {
			continue
		}
		ts, ok := ParseTimestamp(t.CompletionTime, loc)
		if !ok {
			continue
		}
		hour := ts.Hour()
		for i := range buckets {
			if hour >= buckets[i].From && hour < buckets[i].To {
				buckets[i].Count++
				break
			}
		}
	}

	return Result{Buckets: buckets}
}

// Counts returns the bucket counts in label order.
func (r Result) Counts() []int {
	counts := make([]int, len(r.Buckets))
	for i, b := range r.Buckets {
		counts[i] = b.Count
	}
	return counts
}

// Total is the number of bucketed tasks.
func (r Result) Total() int {
	total := 0
	for _, b := range r.Buckets {
		total += b.Count
	}
	return total
}

// Max is the largest bucket count.
func (r Result) Max() int {
	m := 0
	for _, b := range r.Buckets {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}
