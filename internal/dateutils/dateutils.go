// Package dateutils provides the date handling shared by transaction sources.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts
const (
	DateLayoutReport = "02/01/2006" // DD/MM/YYYY, the report query format
	DateLayoutISO    = "2006-01-02"
	DateLayoutSwiss  = "02.01.2006"
	DateLayoutFull   = "2006-01-02 15:04:05"
)

// CommonFormats is the list of layouts tried when reading stored dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutReport,
	DateLayoutSwiss,
	DateLayoutFull,
	time.RFC3339,
}

var reportDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
var spaces = regexp.MustCompile(`\s+`)

// ParseReportDate parses a DD/MM/YYYY bound. The empty string means "no bound"
// and returns the zero time.
func ParseReportDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, nil
	}
	if !reportDatePattern.MatchString(dateStr) {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected DD/MM/YYYY)", dateStr)
	}
	t, err := time.Parse(DateLayoutReport, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s: %w", dateStr, err)
	}
	return t, nil
}

// ParseDate attempts to parse a date string using CommonFormats
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses whitespace
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// Range is an inclusive date interval. A zero bound is open.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses optional DD/MM/YYYY start and end bounds.
func ParseRange(start, end string) (Range, error) {
	s, err := ParseReportDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseReportDate(end)
	if err != nil {
		return Range{}, err
	}
	if !s.IsZero() && !e.IsZero() && e.Before(s) {
		return Range{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return Range{Start: s, End: e}, nil
}

// Contains reports whether date falls within the range, comparing calendar days.
func (r Range) Contains(date time.Time) bool {
	day := truncateToDay(date)
	if !r.Start.IsZero() && day.Before(truncateToDay(r.Start)) {
		return false
	}
	if !r.End.IsZero() && day.After(truncateToDay(r.End)) {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
