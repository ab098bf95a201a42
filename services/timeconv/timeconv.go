// Package timeconv converts between local civil date/times in a named IANA
// zone and absolute UTC instants. All arithmetic happens in instant space;
// local representations exist only at the input and output boundaries.
package timeconv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRe = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	timeRe = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

// InvalidDateTimeError signals that a local date or time string does not
// match its required pattern or does not denote a representable instant.
type InvalidDateTimeError struct {
	Value  string
	Reason string
}

func (e *InvalidDateTimeError) Error() string {
	return fmt.Sprintf("invalid date/time %q: %s", e.Value, e.Reason)
}

// Pattern tokens recognised by Format, replaced with Go reference layouts.
var layoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"DD", "02",
	"MM", "01",
	"HH", "15",
	"hh", "03",
	"mm", "04",
	"ss", "05",
	"A", "PM",
	"z", "MST",
)

// ToInstant interprets dateLocal (DD-MM-YYYY) and timeLocal (HH:MM) as a
// wall-clock reading in the given IANA zone, observing that zone's DST rules
// for the date, and returns the corresponding absolute instant in UTC.
//
// A nonexistent wall-clock reading (inside a spring-forward gap) normalizes
// to the instant the clocks jumped to, which is the earliest valid reading
// on or after the requested one.
func ToInstant(dateLocal, timeLocal, zone string) (time.Time, error) {
	dm := dateRe.FindStringSubmatch(dateLocal)
	if dm == nil {
		return time.Time{}, &InvalidDateTimeError{Value: dateLocal, Reason: "expected DD-MM-YYYY"}
	}
	tm := timeRe.FindStringSubmatch(timeLocal)
	if tm == nil {
		return time.Time{}, &InvalidDateTimeError{Value: timeLocal, Reason: "expected HH:MM"}
	}

	day, _ := strconv.Atoi(dm[1])
	month, _ := strconv.Atoi(dm[2])
	year, _ := strconv.Atoi(dm[3])
	hour, _ := strconv.Atoi(tm[1])
	minute, _ := strconv.Atoi(tm[2])

	if month < 1 || month > 12 {
		return time.Time{}, &InvalidDateTimeError{Value: dateLocal, Reason: "month out of range"}
	}
	if hour > 23 {
		return time.Time{}, &InvalidDateTimeError{Value: timeLocal, Reason: "hour out of range"}
	}
	if minute > 59 {
		return time.Time{}, &InvalidDateTimeError{Value: timeLocal, Reason: "minute out of range"}
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown timezone %q: %w", zone, err)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)

	// time.Date normalizes out-of-range components; a shifted date means the
	// calendar day never existed (e.g. 31-02).
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, &InvalidDateTimeError{Value: dateLocal, Reason: "no such calendar date"}
	}

	return t.UTC(), nil
}

// Format renders an absolute instant as a local wall-clock string in the
// given zone, using a token pattern. Recognised tokens: DD MM YYYY HH mm ss
// hh A z. Any other characters pass through literally.
func Format(t time.Time, zone, pattern string) (string, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", fmt.Errorf("unknown timezone %q: %w", zone, err)
	}
	return t.In(loc).Format(layoutReplacer.Replace(pattern)), nil
}

// AddMinutes offsets an instant by n minutes.
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}
