package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ademuri/spotify-eda/internal/cleaner"
	"github.com/ademuri/spotify-eda/internal/table"
)

// Frequency is the calendar period used to bucket release dates.
type Frequency int

const (
	Yearly Frequency = iota
	Monthly
)

// ParseFrequency accepts the period codes YE and ME, the older Y and M, and
// the words yearly and monthly, in any case.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YE", "Y", "A", "YEARLY":
		return Yearly, nil
	case "ME", "M", "MONTHLY":
		return Monthly, nil
	}
	return Yearly, fmt.Errorf("unknown frequency %q", s)
}

func (f Frequency) String() string {
	if f == Monthly {
		return "ME"
	}
	return "YE"
}

// Label is the human readable name of the frequency.
func (f Frequency) Label() string {
	if f == Monthly {
		return "Monthly"
	}
	return "Yearly"
}

// Bucket returns the half-open period [start, end) containing t.
func (f Frequency) Bucket(t time.Time) (start, end time.Time) {
	t = t.UTC()
	if f == Monthly {
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
	start = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// PopularityTrend averages popularity per release period, oldest first.
// Tracks without a release date are dropped and non-numeric popularity is
// left out of the mean. Periods without any tracks are omitted, as are
// periods whose tracks all lack a popularity.
func PopularityTrend(tracks *table.Table, freq Frequency) []TrendPoint {
	if !tracks.Has("release_date") {
		return []TrendPoint{}
	}

	type acc struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*acc)
	for i := 0; i < tracks.Len(); i++ {
		date, ok := cleaner.ParseDate(tracks.Value(i, "release_date"))
		if !ok {
			continue
		}
		start, _ := freq.Bucket(date)
		b, ok := buckets[start]
		if !ok {
			b = &acc{}
			buckets[start] = b
		}
		if p, ok := table.ToFloat(tracks.Value(i, "popularity")); ok {
			b.sum += p
			b.count++
		}
	}

	points := []TrendPoint{}
	for start, b := range buckets {
		if b.count == 0 {
			continue
		}
		_, end := freq.Bucket(start)
		points = append(points, TrendPoint{
			Period:     end.AddDate(0, 0, -1),
			Popularity: b.sum / float64(b.count),
			Tracks:     b.count,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Period.Before(points[j].Period)
	})
	return points
}

// TailTrend returns the last n points.
func TailTrend(points []TrendPoint, n int) []TrendPoint {
	if n < 0 {
		n = 0
	}
	if n > len(points) {
		n = len(points)
	}
	return points[len(points)-n:]
}
