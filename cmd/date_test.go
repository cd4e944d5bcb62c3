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
	"strings"
	"testing"
	"time"
)

func TestGetImplicitDateRange_year(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020", "2021", "2006")
}

func TestGetImplicitDateRange_month(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-12", "2021-01", "2006-01")
}

func TestGetImplicitDateRange_day(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-02-29", "2020-03-01", "2006-01-02")
}

func TestGetImplicitDateRange_invalid(t *testing.T) {
	for _, ds := range []string{"2020-01-0123", "not_real", "20-01"} {
		_, _, err := getImplicitDateRange(ds)
		if err == nil {
			t.Fatalf("Expected error parsing %q", ds)
		}
		if !strings.Contains(err.Error(), "Invalid format") {
			t.Fatalf("Should have error with invalid format: %v", err)
		}
	}
}

func doTestGetImplicitDateRange(t *testing.T, startString string, endString string, format string) {
	start, end, err := getImplicitDateRange(startString)
	if err != nil {
		t.Fatalf("Parsing %q: %v", startString, err)
	}

	expectedStart, err := time.Parse(format, startString)
	if err != nil {
		t.Fatalf("Constructing expectedStart: %v", err)
	}

	expectedEnd, err := time.Parse(format, endString)
	if err != nil {
		t.Fatalf("Constructing expectedEnd: %v", err)
	}

	if start != expectedStart {
		t.Fatalf("Expected start to be %v, got %v", expectedStart, start)
	}

	if end != expectedEnd {
		t.Fatalf("Expected end to be %v, got %v", expectedEnd, end)
	}
}

func TestGetExplicitDateRange_valid(t *testing.T) {
	start, end, err := getExplicitDateRange("2019", "2020-02")
	if err != nil {
		t.Fatalf("getExplicitDateRange: %v", err)
	}

	expectedStart := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	if start != expectedStart {
		t.Fatalf("Expected start to be %v, got %v", expectedStart, start)
	}
	if end != expectedEnd {
		t.Fatalf("Expected end to be %v, got %v", expectedEnd, end)
	}
}

func TestGetExplicitDateRange_invalid(t *testing.T) {
	if _, _, err := getExplicitDateRange("2020", "abc"); err == nil {
		t.Fatalf("Expected error when parsing invalid datestring")
	}
	if _, _, err := getExplicitDateRange("2021", "2020"); err == nil {
		t.Fatalf("Expected error when start is after end")
	}
}

func TestParseDateRangeFromArgs(t *testing.T) {
	start, end, err := parseDateRangeFromArgs(nil)
	if err != nil {
		t.Fatalf("parseDateRangeFromArgs(nil): %v", err)
	}
	if !start.IsZero() || !end.IsZero() {
		t.Fatalf("Expected an open range, got %v to %v", start, end)
	}

	if _, _, err := parseDateRangeFromArgs([]string{"2019", "2020", "2021"}); err == nil {
		t.Fatalf("Expected error with three date arguments")
	}
}
