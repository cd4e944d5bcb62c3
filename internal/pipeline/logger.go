package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

const LogFile = "run.log"

// NewRunLogger returns an INFO logger writing to console and to run.log in
// resultsDir. The log file is truncated; close it when the run ends.
func NewRunLogger(resultsDir string, console io.Writer) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", resultsDir, err)
	}
	path := filepath.Join(resultsDir, LogFile)
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "spotify-eda",
		Level:  hclog.Info,
		Output: io.MultiWriter(f, console),
	})
	return logger, f, nil
}
