package dashboard

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ademuri/spotify-eda/internal/analysis"
)

const (
	minTopN     = 5
	maxTopN     = 50
	defaultTopN = 10
)

// trackParams reads artist, from and to. A missing year leaves that side of
// the range open.
func trackParams(c *gin.Context) (analysis.TrackFilter, error) {
	f := analysis.TrackFilter{Artist: c.DefaultQuery("artist", analysis.AllValues)}

	from, fromSet, err := yearParam(c, "from")
	if err != nil {
		return f, err
	}
	to, toSet, err := yearParam(c, "to")
	if err != nil {
		return f, err
	}
	if fromSet && toSet && from > to {
		return f, fmt.Errorf("from (%d) is after to (%d)", from, to)
	}
	if fromSet {
		f.Since, _ = analysis.YearSpan(from, from)
	}
	if toSet {
		_, f.Until = analysis.YearSpan(to, to)
	}
	return f, nil
}

func yearParam(c *gin.Context, name string) (int, bool, error) {
	v := c.Query(name)
	if v == "" {
		return 0, false, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1 || year > 9999 {
		return 0, false, fmt.Errorf("invalid %s year %q", name, v)
	}
	return year, true, nil
}

func artistParams(c *gin.Context) analysis.ArtistFilter {
	return analysis.ArtistFilter{
		Artist: c.DefaultQuery("artist", analysis.AllValues),
		Genre:  c.DefaultQuery("genre", analysis.AllValues),
	}
}

// topNParam reads a count, clamped to the range the dashboard offers.
func topNParam(c *gin.Context, name string, def int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	if n < minTopN {
		n = minTopN
	}
	if n > maxTopN {
		n = maxTopN
	}
	return n, nil
}

func frequencyParam(c *gin.Context) (analysis.Frequency, error) {
	return analysis.ParseFrequency(c.DefaultQuery("freq", "yearly"))
}
