package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/chart"
	"github.com/ademuri/spotify-eda/internal/table"
)

const jsonContentType = "application/json; charset=utf-8"

type yearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type filtersResponse struct {
	Artists []string   `json:"artists"`
	Genres  []string   `json:"genres"`
	Years   *yearRange `json:"years"`
}

type topResponse struct {
	Tracks  *table.Table `json:"tracks"`
	Artists *table.Table `json:"artists"`
}

type trendRow struct {
	ReleaseDate string   `json:"release_date"`
	Popularity  *float64 `json:"popularity"`
	Tracks      int      `json:"tracks"`
}

type matrixResponse struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

func (s *Server) getFilters(c *gin.Context) {
	s.respond(c, jsonContentType, s.key("filters"), func() ([]byte, error) {
		resp := filtersResponse{
			Artists: append([]string{analysis.AllValues}, analysis.ArtistNames(s.data.Artists)...),
			Genres:  append([]string{analysis.AllValues}, analysis.GenreValues(s.data.Artists)...),
		}
		if first, last, ok := analysis.YearRange(s.data.Tracks); ok {
			resp.Years = &yearRange{Min: first, Max: last}
		}
		return json.Marshal(resp)
	})
}

func (s *Server) getTracks(c *gin.Context) {
	f, err := trackParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	s.respond(c, jsonContentType, s.key("tracks", f.Artist, f.Since, f.Until), func() ([]byte, error) {
		return json.Marshal(analysis.FilterTracks(s.data.Tracks, f))
	})
}

func (s *Server) getArtists(c *gin.Context) {
	f := artistParams(c)
	s.respond(c, jsonContentType, s.key("artists", f.Artist, f.Genre), func() ([]byte, error) {
		return json.Marshal(analysis.FilterArtists(s.data.Artists, f))
	})
}

// topQuery holds the parsed parameters of a ranking request.
type topQuery struct {
	tracks   analysis.TrackFilter
	artists  analysis.ArtistFilter
	nTracks  int
	nArtists int
}

func topParams(c *gin.Context) (topQuery, error) {
	var q topQuery
	var err error
	if q.tracks, err = trackParams(c); err != nil {
		return q, err
	}
	if q.nTracks, err = topNParam(c, "tracks", defaultTopN); err != nil {
		return q, err
	}
	if q.nArtists, err = topNParam(c, "artists", defaultTopN); err != nil {
		return q, err
	}
	q.artists = artistParams(c)
	return q, nil
}

func (q topQuery) keyParams() []any {
	return []any{
		q.tracks.Artist, q.tracks.Since, q.tracks.Until,
		q.artists.Artist, q.artists.Genre,
		q.nTracks, q.nArtists,
	}
}

// topTables ranks the filtered tracks and artists. No popularity threshold
// applies here.
func (s *Server) topTables(q topQuery) (tracks, artists *table.Table) {
	tracks = analysis.TopPopularTracks(analysis.FilterTracks(s.data.Tracks, q.tracks), nil, q.nTracks)
	artists = analysis.TopArtistsByFollowers(analysis.FilterArtists(s.data.Artists, q.artists), q.nArtists)
	return project(tracks, "name", "popularity"), project(artists, "name", "followers")
}

// project keeps only cols when all of them are present.
func project(t *table.Table, cols ...string) *table.Table {
	if selected, err := t.Select(cols...); err == nil {
		return selected
	}
	return t
}

func (s *Server) getTop(c *gin.Context) {
	q, err := topParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	s.respond(c, jsonContentType, s.key("top", q.keyParams()...), func() ([]byte, error) {
		tracks, artists := s.topTables(q)
		return json.Marshal(topResponse{Tracks: tracks, Artists: artists})
	})
}

func (s *Server) getGenres(c *gin.Context) {
	n, err := topNParam(c, "n", analysis.DefaultTopNGenres)
	if err != nil {
		badRequest(c, err)
		return
	}
	s.respond(c, jsonContentType, s.key("genres", n), func() ([]byte, error) {
		return json.Marshal(analysis.HeadGenres(analysis.GenreDistribution(s.data.Artists), n))
	})
}

func (s *Server) getTrend(c *gin.Context) {
	freq, err := frequencyParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	s.respond(c, jsonContentType, s.key("trend", freq.String()), func() ([]byte, error) {
		points := analysis.PopularityTrend(s.data.Tracks, freq)
		rows := make([]trendRow, len(points))
		for i, p := range points {
			rows[i] = trendRow{ReleaseDate: p.Label(), Popularity: finite(p.Popularity), Tracks: p.Tracks}
		}
		return json.Marshal(rows)
	})
}

func (s *Server) getCorrelation(c *gin.Context) {
	s.respond(c, jsonContentType, s.key("correlation"), func() ([]byte, error) {
		m := analysis.Correlation(s.data.Features)
		resp := matrixResponse{Columns: m.Columns, Values: make([][]*float64, len(m.Values))}
		for i, row := range m.Values {
			resp.Values[i] = make([]*float64, len(row))
			for j, v := range row {
				resp.Values[i][j] = finite(v)
			}
		}
		return json.Marshal(resp)
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

var chartNames = []string{"genres", "trend", "top-tracks", "top-artists", "correlation"}

func (s *Server) getChart(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("name"), ".png")
	if !ok || !knownChart(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown chart %q", c.Param("name"))})
		return
	}

	var build func() (*chart.Chart, error)
	var params []any
	switch name {
	case "genres":
		n, err := topNParam(c, "n", analysis.DefaultTopNGenres)
		if err != nil {
			badRequest(c, err)
			return
		}
		params = []any{n}
		build = func() (*chart.Chart, error) {
			return chart.GenreBar(analysis.GenreDistribution(s.data.Artists), n)
		}
	case "trend":
		freq, err := frequencyParam(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		params = []any{freq.String()}
		build = func() (*chart.Chart, error) {
			return chart.PopularityTrend(analysis.PopularityTrend(s.data.Tracks, freq), freq.Label())
		}
	case "top-tracks", "top-artists":
		q, err := topParams(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		params = q.keyParams()
		build = func() (*chart.Chart, error) {
			tracks, artists := s.topTables(q)
			if name == "top-tracks" {
				return chart.TopEntities(tracks, "name", "popularity", tracks.Len(),
					fmt.Sprintf("Top %d Tracks by Popularity", tracks.Len()))
			}
			return chart.TopEntities(artists, "name", "followers", artists.Len(),
				fmt.Sprintf("Top %d Artists by Followers", artists.Len()))
		}
	case "correlation":
		build = func() (*chart.Chart, error) {
			return chart.CorrelationHeatmap(analysis.Correlation(s.data.Features), chart.DefaultTitle)
		}
	}

	key := s.key("chart", append([]any{name}, params...)...)
	s.respond(c, "image/png", key, func() ([]byte, error) {
		ch, err := build()
		if err != nil || ch == nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := chart.WritePNG(&buf, ch); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func knownChart(name string) bool {
	for _, n := range chartNames {
		if n == name {
			return true
		}
	}
	return false
}
