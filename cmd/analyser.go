/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/spotify-eda/internal/loader"
	"github.com/ademuri/spotify-eda/internal/table"
)

type Analysis struct {
	results [][]string
	summary string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int

	// Only return results above this value. Nil returns every result.
	FilterThreshold *int
}

// Analyser computes one analysis over the cleaned datasets. A zero start or
// end leaves that side of the release date range open.
type Analyser interface {
	GetResults(ds *loader.Datasets, start time.Time, end time.Time) (Analysis, error)

	GetName() string
}

// analysisFromTable renders cols of t, or every column when cols is empty.
func analysisFromTable(t *table.Table, cols []string, summary string) (Analysis, error) {
	if len(cols) > 0 {
		selected, err := t.Select(cols...)
		if err != nil {
			return Analysis{}, err
		}
		t = selected
	}
	return Analysis{results: t.Records(), summary: summary}, nil
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	if len(a.results) <= 1 {
		fmt.Fprintf(out, "No results\n%s\n", a.summary)
		return out.String()
	}
	tw := tablewriter.NewWriter(out)
	tw.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := tw.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := tw.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}
