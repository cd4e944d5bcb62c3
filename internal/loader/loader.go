// Package loader reads the artists, tracks and audio-features sources from a
// data directory.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ademuri/spotify-eda/internal/table"
)

// Sources names the three files inside the data directory.
type Sources struct {
	Artists  string
	Tracks   string
	Features string
}

func DefaultSources() Sources {
	return Sources{
		Artists:  "artists.csv",
		Tracks:   "tracks.csv",
		Features: "SpotifyFeatures.csv",
	}
}

func (s Sources) paths(dir string) []string {
	return []string{
		filepath.Join(dir, s.Artists),
		filepath.Join(dir, s.Tracks),
		filepath.Join(dir, s.Features),
	}
}

type Datasets struct {
	Artists  *table.Table
	Tracks   *table.Table
	Features *table.Table
}

// MissingSourceError is returned when a source file is absent or cannot be
// read as CSV. It is fatal for a run.
type MissingSourceError struct {
	Path string
	Err  error
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *MissingSourceError) Unwrap() error {
	return e.Err
}

// Load reads all three sources. Any failure aborts the whole load.
func Load(dir string, sources Sources) (*Datasets, error) {
	paths := sources.paths(dir)
	tables := make([]*table.Table, len(paths))
	for i, path := range paths {
		t, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}
	return &Datasets{Artists: tables[0], Tracks: tables[1], Features: tables[2]}, nil
}

// LoadFile reads one CSV file with a header row. Columns and rows keep the
// order of the file; cell types are inferred per column.
func LoadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingSourceError{Path: path, Err: err}
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, &MissingSourceError{Path: path, Err: df.Err}
	}
	return FromRecords(df.Records()), nil
}

// FromRecords builds a typed table from text records, header first.
func FromRecords(records [][]string) *table.Table {
	if len(records) == 0 {
		return table.New(nil, nil)
	}
	header := records[0]
	body := records[1:]

	rows := make([][]any, len(body))
	for i := range rows {
		rows[i] = make([]any, len(header))
	}
	for j := range header {
		raw := make([]string, len(body))
		for i, record := range body {
			if j < len(record) {
				raw[i] = record[j]
			}
		}
		for i, v := range table.InferColumn(raw) {
			rows[i][j] = v
		}
	}
	return table.New(header, rows)
}

// Fingerprint identifies the current contents of the sources by path, size
// and modification time. It changes whenever a file is replaced or edited.
func Fingerprint(dir string, sources Sources) (string, error) {
	var parts []string
	for _, path := range sources.paths(dir) {
		info, err := os.Stat(path)
		if err != nil {
			return "", &MissingSourceError{Path: path, Err: err}
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano()))
	}
	return strings.Join(parts, "|"), nil
}
