package primitive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted by ParseRFC822, tried in order. RSS dates commonly omit the
// seconds or spell the zone by name.
var rfc822Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04 -0700",
	time.RFC822Z,
	time.RFC822,
}

// DateLayout is the layout of calendar dates (xs:date without a zone).
const DateLayout = time.DateOnly

// ParseTextualBool accepts yes/no, on/off, true/false, y/n and 1/0 in any case.
func ParseTextualBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on", "true", "y", "1":
		return true, nil
	case "no", "off", "false", "n", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a textual boolean", s)
	}
}

// FormatYesNo writes "yes" or "no".
func FormatYesNo(b bool) (string, error) {
	if b {
		return "yes", nil
	}

	return "no", nil
}

// FormatOnOff writes "on" or "off".
func FormatOnOff(b bool) (string, error) {
	if b {
		return "on", nil
	}

	return "off", nil
}

// ParseNumericBool accepts "1" and "0" only.
func ParseNumericBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not 0 or 1", s)
	}
}

func FormatNumericBool(b bool) (string, error) {
	if b {
		return "1", nil
	}

	return "0", nil
}

// ParseDatetime reads an RFC 3339 timestamp with optional fractional seconds.
func ParseDatetime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}

func FormatDatetime(t time.Time) (string, error) {
	return t.Format(time.RFC3339Nano), nil
}

// ParseDate reads a calendar date; the result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) (string, error) {
	return t.Format(DateLayout), nil
}

// ParseRFC822 reads the date format of RSS and mail headers.
func ParseRFC822(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var firstErr error

	for _, layout := range rfc822Layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, firstErr
}

// FormatRFC822 writes the RFC 1123 form with a numeric zone.
func FormatRFC822(t time.Time) (string, error) {
	return t.Format(time.RFC1123Z), nil
}

// ParseTimestamp reads Unix seconds; the result is in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(sec, 0).UTC(), nil
}

// FormatTimestamp writes Unix seconds, dropping sub-second precision.
func FormatTimestamp(t time.Time) (string, error) {
	return strconv.FormatInt(t.Unix(), 10), nil
}

// ParseDuration reads Go duration syntax such as "2h45m".
func ParseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(s))
}

func FormatDuration(d time.Duration) (string, error) {
	return d.String(), nil
}

func ParseNanoseconds(s string) (time.Duration, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}

	return time.Duration(n), nil
}

func FormatNanoseconds(d time.Duration) (string, error) {
	return strconv.FormatInt(int64(d), 10), nil
}

// ParseSeconds reads a floating-point number of seconds.
func ParseSeconds(s string) (time.Duration, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}

	ns := f * float64(time.Second)
	if math.IsNaN(ns) || math.IsInf(ns, 0) || ns > math.MaxInt64 || ns < math.MinInt64 {
		return 0, fmt.Errorf("%q seconds is out of range", s)
	}

	return time.Duration(math.Round(ns)), nil
}

// FormatSeconds writes the shortest decimal that reads back to d.
func FormatSeconds(d time.Duration) (string, error) {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64), nil
}
