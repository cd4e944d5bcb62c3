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
	"fmt"
	"regexp"
	"time"
)

// ParsedDate is a date string and the precision it was written with.
type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

// next returns the start of the period after the one d names.
func (d ParsedDate) next() (time.Time, error) {
	switch {
	case d.Year:
		return d.Date.AddDate(1, 0, 0), nil
	case d.Month:
		return d.Date.AddDate(0, 1, 0), nil
	case d.Day:
		return d.Date.AddDate(0, 0, 1), nil
	}
	return time.Time{}, fmt.Errorf("Invalid format: %v", d.Date)
}

var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
	set    func(*ParsedDate)
}{
	{regexp.MustCompile(`^\d{4}$`), "2006", func(d *ParsedDate) { d.Year = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01", func(d *ParsedDate) { d.Month = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02", func(d *ParsedDate) { d.Day = true }},
}

// parseDateRangeFromArgs turns zero, one or two date arguments into a
// half-open release date range. With no arguments both bounds are zero.
func parseDateRangeFromArgs(args []string) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 0:
		return

	case 1:
		start, end, err = getImplicitDateRange(args[0])

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("Expected at most two date arguments")
	}
	return
}

// getImplicitDateRange covers the whole year, month or day of ds.
func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}
	start = date.Date
	end, err = date.next()
	return
}

// getExplicitDateRange runs from the start of startString through the end of
// the period named by endString.
func getExplicitDateRange(startString, endString string) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}
	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}

	start = startParsed.Date
	end, err = endParsed.next()
	if err != nil {
		return
	}
	if !start.Before(end) {
		err = fmt.Errorf("Start %q is after end %q", startString, endString)
	}
	return
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	for _, p := range datePatterns {
		if !p.re.MatchString(ds) {
			continue
		}
		date.Date, err = time.Parse(p.layout, ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring %q: %w", ds, err)
			return
		}
		p.set(&date)
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
